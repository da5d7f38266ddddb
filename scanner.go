package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kylesnowschwartz/qrlog/scan"
	"github.com/kylesnowschwartz/qrlog/store"
)

// defaultScanCooldown is how long scans are ignored after an accepted one.
const defaultScanCooldown = 2 * time.Second

// maxPayloadSize caps a single decoded payload read from the input stream.
const maxPayloadSize = 1 << 20

// scanner turns a stream of decoded payloads into records. It drops a
// payload equal to the last accepted one, and anything that arrives within
// cooldown of the last accepted scan.
type scanner struct {
	history  *store.History
	settings store.Settings
	cooldown time.Duration
	out      io.Writer

	now   func() time.Time
	newID func() string

	lastData string
	lastAt   time.Time
	hasLast  bool
}

func newScanner(h *store.History, settings store.Settings, cooldown time.Duration, out io.Writer) *scanner {
	return &scanner{
		history:  h,
		settings: settings,
		cooldown: cooldown,
		out:      out,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// handle processes one decoded payload. Returns the new record and true
// when the scan was accepted.
func (s *scanner) handle(ctx context.Context, data string) (scan.Record, bool) {
	if data == "" {
		return scan.Record{}, false
	}
	now := s.now()
	if s.hasLast {
		if data == s.lastData {
			slog.Debug("Ignoring repeated scan")
			return scan.Record{}, false
		}
		if now.Sub(s.lastAt) < s.cooldown {
			slog.Debug("Ignoring scan during cooldown", "since_last", now.Sub(s.lastAt))
			return scan.Record{}, false
		}
	}
	s.lastData = data
	s.lastAt = now
	s.hasLast = true

	record := scan.NewRecord(s.newID(), data, now)
	if s.settings.SaveHistory && s.history != nil {
		s.history.Add(ctx, record)
	}
	s.report(record)
	return record, true
}

// report prints an accepted record and the side effects the settings ask for.
func (s *scanner) report(r scan.Record) {
	if s.settings.BeepOnScan {
		fmt.Fprint(s.out, "\a")
	}
	fmt.Fprintln(s.out, formatRecordLine(r))
	if s.settings.AutoOpenURLs && r.Type == scan.TypeURL {
		if target := scan.OpenTarget(r); target != "" {
			fmt.Fprintln(s.out, "open:", target)
		}
	}
}

// run reads payloads from r until EOF or ctx is cancelled. With nulSep,
// payloads are NUL-separated so multi-line vCards survive; otherwise one
// payload per line.
func (s *scanner) run(ctx context.Context, r io.Reader, nulSep bool) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	// The reader goroutine may stay blocked on r after ctx is cancelled;
	// it exits with the process.
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), maxPayloadSize)
		if nulSep {
			sc.Split(splitNul)
		}
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	accepted := 0
	for {
		select {
		case <-ctx.Done():
			slog.Debug("Scan loop cancelled", "accepted", accepted)
			return nil
		case line, ok := <-lines:
			if !ok {
				slog.Debug("Scan input closed", "accepted", accepted)
				if err := <-errc; err != nil {
					return fmt.Errorf("failed to read scan input: %w", err)
				}
				return nil
			}
			if _, ok := s.handle(ctx, trimLineEnd(line)); ok {
				accepted++
			}
		}
	}
}

// trimLineEnd drops a trailing CR left by CRLF input.
func trimLineEnd(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}

// splitNul is a bufio.SplitFunc for NUL-terminated records.
func splitNul(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
