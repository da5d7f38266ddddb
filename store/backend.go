package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Storage keys. These match the identifiers older app versions wrote, so
// existing history and settings are picked up unchanged.
const (
	HistoryKey  = "@scanner_pro:history"
	SettingsKey = "@scanner_pro:settings"
)

// ErrNotFound is returned by Backend.Get when the key has never been set.
var ErrNotFound = errors.New("store: key not found")

// Backend is a small durable key/value store holding JSON documents.
type Backend interface {
	// Get returns the stored value, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Path is the on-disk location a watcher should observe: the data
	// directory for file backends, the database file for SQLite.
	Path() string
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// sqliteFileName is the database created inside the data directory.
const sqliteFileName = "qrlog.db"

// Open creates the backend of the given kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case "", KindFile:
		b, err := NewFileBackend(dir)
		if err != nil {
			return nil, err
		}
		return b, nil
	case KindSQLite:
		b, err := NewSQLiteBackend(filepath.Join(dir, sqliteFileName))
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %q or %q)", kind, KindFile, KindSQLite)
	}
}
