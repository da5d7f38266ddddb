package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/qrlog/store"
)

// envKeyReplacer maps nested keys to env names: store.path -> QRLOG_STORE_PATH.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault("store.backend", store.KindFile)
	viper.SetDefault("store.path", "~/.local/share/qrlog")
	viper.SetDefault("scan.cooldown", "2s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.file", "")
}

// expandPath expands ~ and environment variables in a path.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// app bundles the store handles a command works with.
type app struct {
	backend store.Backend
	history *store.History
}

// openApp opens the configured store.
func openApp() (*app, error) {
	kind := viper.GetString("store.backend")
	dir := expandPath(viper.GetString("store.path"))
	if dir == "" {
		return nil, fmt.Errorf("store.path is not set")
	}

	backend, err := store.Open(kind, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", kind, dir, err)
	}
	slog.Debug("Opened store", "backend", kind, "path", backend.Path())

	return &app{
		backend: backend,
		history: store.NewHistory(backend, slog.Default()),
	}, nil
}

func (a *app) settings(ctx context.Context) store.Settings {
	return store.LoadSettings(ctx, a.backend, slog.Default())
}

func (a *app) Close() error {
	return a.backend.Close()
}
