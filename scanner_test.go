package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kylesnowschwartz/qrlog/store"
)

// testScanner returns a scanner with a controllable clock and sequential ids.
func testScanner(t *testing.T, settings store.Settings) (*scanner, *store.History, *bytes.Buffer, *time.Time) {
	t.Helper()
	h := newTestHistory(t, nil)
	var out bytes.Buffer
	s := newScanner(h, settings, 2*time.Second, &out)

	clock := testNow
	s.now = func() time.Time { return clock }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s, h, &out, &clock
}

func TestScannerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted scan is recorded", func(t *testing.T) {
		s, h, out, _ := testScanner(t, store.DefaultSettings())
		r, ok := s.handle(ctx, "https://example.com")
		if !ok {
			t.Fatal("first scan should be accepted")
		}
		if r.ID != "id-1" || !r.Timestamp.Equal(testNow) || r.IsSaved {
			t.Errorf("record = %+v", r)
		}
		if got := h.Load(ctx); len(got) != 1 || got[0].ID != "id-1" {
			t.Errorf("history = %+v, want the new record", got)
		}
		if !strings.Contains(out.String(), "example.com") {
			t.Errorf("output = %q, want the record line", out.String())
		}
	})

	t.Run("repeat of last payload ignored even after cooldown", func(t *testing.T) {
		s, h, _, clock := testScanner(t, store.DefaultSettings())
		s.handle(ctx, "hello")
		*clock = clock.Add(time.Hour)
		if _, ok := s.handle(ctx, "hello"); ok {
			t.Error("repeat payload should be ignored")
		}
		if n := len(h.Load(ctx)); n != 1 {
			t.Errorf("history has %d records, want 1", n)
		}
	})

	t.Run("different payload during cooldown ignored", func(t *testing.T) {
		s, _, _, clock := testScanner(t, store.DefaultSettings())
		s.handle(ctx, "first")
		*clock = clock.Add(1500 * time.Millisecond)
		if _, ok := s.handle(ctx, "second"); ok {
			t.Error("scan inside cooldown should be ignored")
		}
		*clock = clock.Add(600 * time.Millisecond)
		if _, ok := s.handle(ctx, "second"); !ok {
			t.Error("scan after cooldown should be accepted")
		}
	})

	t.Run("ignored scan does not extend cooldown", func(t *testing.T) {
		s, _, _, clock := testScanner(t, store.DefaultSettings())
		s.handle(ctx, "a")
		*clock = clock.Add(time.Second)
		s.handle(ctx, "b") // ignored
		*clock = clock.Add(time.Second)
		if _, ok := s.handle(ctx, "c"); !ok {
			t.Error("cooldown should run from the last accepted scan")
		}
	})

	t.Run("payload seen before the last one is accepted again", func(t *testing.T) {
		s, _, _, clock := testScanner(t, store.DefaultSettings())
		s.handle(ctx, "a")
		*clock = clock.Add(3 * time.Second)
		s.handle(ctx, "b")
		*clock = clock.Add(3 * time.Second)
		if _, ok := s.handle(ctx, "a"); !ok {
			t.Error("only the immediately previous payload is deduplicated")
		}
	})

	t.Run("empty payload ignored", func(t *testing.T) {
		s, _, _, _ := testScanner(t, store.DefaultSettings())
		if _, ok := s.handle(ctx, ""); ok {
			t.Error("empty payload should be ignored")
		}
	})

	t.Run("saveHistory off skips persistence", func(t *testing.T) {
		settings := store.DefaultSettings()
		settings.SaveHistory = false
		s, h, out, _ := testScanner(t, settings)
		if _, ok := s.handle(ctx, "tel:+15551234"); !ok {
			t.Fatal("scan should still be accepted")
		}
		if n := len(h.Load(ctx)); n != 0 {
			t.Errorf("history has %d records, want 0", n)
		}
		if out.Len() == 0 {
			t.Error("accepted scan should still be printed")
		}
	})

	t.Run("autoOpenURLs prints open target for urls", func(t *testing.T) {
		settings := store.DefaultSettings()
		settings.AutoOpenURLs = true
		s, _, out, clock := testScanner(t, settings)
		s.handle(ctx, "https://example.com/x")
		if !strings.Contains(out.String(), "open: https://example.com/x") {
			t.Errorf("output = %q, want open line", out.String())
		}

		out.Reset()
		*clock = clock.Add(3 * time.Second)
		s.handle(ctx, "tel:+15551234")
		if strings.Contains(out.String(), "open:") {
			t.Errorf("output = %q, non-URL should not auto-open", out.String())
		}
	})

	t.Run("beepOnScan rings the bell", func(t *testing.T) {
		settings := store.DefaultSettings()
		settings.BeepOnScan = true
		s, _, out, _ := testScanner(t, settings)
		s.handle(ctx, "hello")
		if !strings.HasPrefix(out.String(), "\a") {
			t.Errorf("output = %q, want leading bell", out.String())
		}
	})

	t.Run("default ids are uuids", func(t *testing.T) {
		s := newScanner(nil, store.DefaultSettings(), 0, &bytes.Buffer{})
		r, ok := s.handle(ctx, "hello")
		if !ok {
			t.Fatal("scan should be accepted")
		}
		id, err := uuid.Parse(r.ID)
		if err != nil {
			t.Fatalf("id %q is not a uuid: %v", r.ID, err)
		}
		if id.Version() != 4 {
			t.Errorf("uuid version = %d, want 4", id.Version())
		}
	})
}

func TestScannerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("one payload per line", func(t *testing.T) {
		s, h, _, _ := testScanner(t, store.DefaultSettings())
		s.cooldown = 0
		input := "https://a.example\r\nhttps://a.example\n\nWIFI:S:Net;;\n"
		if err := s.run(ctx, strings.NewReader(input), false); err != nil {
			t.Fatalf("run: %v", err)
		}
		got := h.Load(ctx)
		if len(got) != 2 {
			t.Fatalf("history has %d records, want 2", len(got))
		}
		// Newest first.
		if got[0].RawData != "WIFI:S:Net;;" || got[1].RawData != "https://a.example" {
			t.Errorf("history = %q, %q", got[0].RawData, got[1].RawData)
		}
	})

	t.Run("nul separated keeps multi-line payloads", func(t *testing.T) {
		s, h, _, _ := testScanner(t, store.DefaultSettings())
		s.cooldown = 0
		vcard := "BEGIN:VCARD\nFN:Ada Lovelace\nEND:VCARD"
		input := vcard + "\x00hello\x00"
		if err := s.run(ctx, strings.NewReader(input), true); err != nil {
			t.Fatalf("run: %v", err)
		}
		got := h.Load(ctx)
		if len(got) != 2 || got[1].RawData != vcard {
			t.Fatalf("history = %+v, want vCard then hello", got)
		}
		if got[1].Title != "Ada Lovelace" {
			t.Errorf("vCard title = %q, want Ada Lovelace", got[1].Title)
		}
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		s, _, _, _ := testScanner(t, store.DefaultSettings())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		done := make(chan error, 1)
		go func() { done <- s.run(cctx, blockingReader{}, false) }()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("run = %v, want nil on cancel", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("run did not return after cancel")
		}
	})
}

// blockingReader never returns, like an idle stdin.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

func TestSplitNul(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		atEOF   bool
		advance int
		token   string
	}{
		{"complete record", "ab\x00cd", false, 3, "ab"},
		{"need more data", "abc", false, 0, ""},
		{"final unterminated record", "abc", true, 3, "abc"},
		{"empty at EOF", "", true, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, token, err := splitNul([]byte(tt.data), tt.atEOF)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if advance != tt.advance || string(token) != tt.token {
				t.Errorf("splitNul = (%d, %q), want (%d, %q)", advance, token, tt.advance, tt.token)
			}
		})
	}
}
