package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/kylesnowschwartz/qrlog/scan"
)

// RecentLimit is how many records the home view shows.
const RecentLimit = 10

// History persists scan records newest first. Every method is best-effort:
// a failed read yields an empty list and a failed write is logged and
// dropped, so callers never have to handle storage errors.
type History struct {
	backend Backend
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewHistory wraps backend. A nil logger uses slog.Default().
func NewHistory(backend Backend, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{backend: backend, logger: logger}
}

// Load returns every stored record, newest first.
func (h *History) Load(ctx context.Context) []scan.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Save replaces the stored history.
func (h *History) Save(ctx context.Context, records []scan.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = h.save(ctx, records)
}

// Add prepends record and returns the updated history. When the write
// fails the returned list holds only record.
func (h *History) Add(ctx context.Context, record scan.Record) []scan.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	updated := append([]scan.Record{record}, h.load(ctx)...)
	if err := h.save(ctx, updated); err != nil {
		return []scan.Record{record}
	}
	return updated
}

// Get returns the record with id.
func (h *History) Get(ctx context.Context, id string) (scan.Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range h.load(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return scan.Record{}, false
}

// Update applies fn to the record with id and persists the result. It
// reports whether the record existed; nothing is written when it did not.
func (h *History) Update(ctx context.Context, id string, fn func(*scan.Record)) ([]scan.Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	records := h.load(ctx)
	i := slices.IndexFunc(records, func(r scan.Record) bool { return r.ID == id })
	if i < 0 {
		return records, false
	}
	fn(&records[i])
	_ = h.save(ctx, records)
	return records, true
}

// ToggleSaved flips the saved flag of the record with id.
func (h *History) ToggleSaved(ctx context.Context, id string) ([]scan.Record, bool) {
	return h.Update(ctx, id, func(r *scan.Record) { r.IsSaved = !r.IsSaved })
}

// Delete removes the record with id.
func (h *History) Delete(ctx context.Context, id string) []scan.Record {
	return h.DeleteMany(ctx, []string{id})
}

// DeleteMany removes every record whose id is in ids.
func (h *History) DeleteMany(ctx context.Context, ids []string) []scan.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	records := slices.DeleteFunc(h.load(ctx), func(r scan.Record) bool { return drop[r.ID] })
	_ = h.save(ctx, records)
	return records
}

// Clear removes every unsaved record and returns what is left.
func (h *History) Clear(ctx context.Context) []scan.Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := scan.Saved(h.load(ctx))
	if kept == nil {
		kept = []scan.Record{}
	}
	_ = h.save(ctx, kept)
	return kept
}

// Saved returns only saved records.
func (h *History) Saved(ctx context.Context) []scan.Record {
	return scan.Saved(h.Load(ctx))
}

// Recent returns the newest n records.
func (h *History) Recent(ctx context.Context, n int) []scan.Record {
	return scan.Recent(h.Load(ctx), n)
}

// Path is the location a watcher should observe for history changes.
func (h *History) Path() string {
	return h.backend.Path()
}

func (h *History) load(ctx context.Context) []scan.Record {
	records, err := decodeHistory(ctx, h.backend)
	if err != nil {
		h.logger.Warn("Failed to load history", "error", err)
		return nil
	}
	return records
}

func (h *History) save(ctx context.Context, records []scan.Record) error {
	if err := encodeHistory(ctx, h.backend, records); err != nil {
		h.logger.Warn("Failed to save history", "error", err, "records", len(records))
		return err
	}
	return nil
}

func decodeHistory(ctx context.Context, b Backend) ([]scan.Record, error) {
	data, err := b.Get(ctx, HistoryKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var records []scan.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return records, nil
}

func encodeHistory(ctx context.Context, b Backend, records []scan.Record) error {
	if records == nil {
		records = []scan.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return b.Set(ctx, HistoryKey, data)
}
