package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kylesnowschwartz/qrlog/scan"
	"github.com/kylesnowschwartz/qrlog/store"
)

// key constructs a tea.KeyMsg from a string like "j", "tab", "enter", "ctrl+c".
// Single-character strings are mapped to KeyRunes; named keys get their
// corresponding KeyType constant.
func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// mouseScroll constructs a tea.MouseMsg for wheel events.
func mouseScroll(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: button}
}

// testNow is the fixed clock for model tests: Monday afternoon, UTC.
var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

// quietLogger discards log output.
var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testRecords returns four records spread over three date groups, newest
// first. Laid out as rows they are:
//
//	0 TODAY
//	1 url      (aaaa1111)
//	2 wifi     (bbbb2222)
//	3 YESTERDAY
//	4 text     (cccc3333, saved)
//	5 <Mar 1>
//	6 geo      (dddd4444)
func testRecords() []scan.Record {
	records := []scan.Record{
		scan.NewRecord("aaaa1111-0000-4000-8000-000000000001", "https://example.com/menu",
			time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)),
		scan.NewRecord("bbbb2222-0000-4000-8000-000000000002", "WIFI:T:WPA;S:HomeNet;P:secret;;",
			time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)),
		scan.NewRecord("cccc3333-0000-4000-8000-000000000003", "remember the milk",
			time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)),
		scan.NewRecord("dddd4444-0000-4000-8000-000000000004", "geo:37.7749,-122.4194",
			time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)),
	}
	records[2].IsSaved = true
	return records
}

// newTestHistory returns a file-backed history in a temp dir holding records.
func newTestHistory(t *testing.T, records []scan.Record) *store.History {
	t.Helper()
	b, err := store.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	h := store.NewHistory(b, quietLogger)
	if records != nil {
		h.Save(context.Background(), records)
	}
	return h
}

// testModel returns a model over testRecords backed by a temp-dir history,
// width=100, height=30, a fixed clock and a dark-background renderer.
// The cursor rests on the first record (row 1).
func testModel(t *testing.T) model {
	t.Helper()
	records := testRecords()
	h := newTestHistory(t, records)

	m := initialModel(context.Background(), h, records, true) // dark background
	m.now = func() time.Time { return testNow }
	m.width = 100
	m.height = 30
	m.rebuildRows()
	return m
}

// asModel extracts the model from an Update return value.
// Panics when the type assertion fails; that is a test bug.
func asModel(t tea.Model) model {
	return t.(model)
}

// isQuit returns true when cmd is the Quit command.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// runCmd executes cmd and feeds the resulting message back into the model,
// the way the Bubble Tea runtime would.
func runCmd(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	result, _ := m.Update(cmd())
	return asModel(result)
}
