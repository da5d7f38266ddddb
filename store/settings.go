package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Settings are the user's scan preferences.
type Settings struct {
	AutoOpenURLs  bool `json:"autoOpenURLs"`
	VibrateOnScan bool `json:"vibrateOnScan"`
	BeepOnScan    bool `json:"beepOnScan"`
	SaveHistory   bool `json:"saveHistory"`
}

// DefaultSettings returns the settings used before the user changes any.
func DefaultSettings() Settings {
	return Settings{
		AutoOpenURLs:  false,
		VibrateOnScan: true,
		BeepOnScan:    false,
		SaveHistory:   true,
	}
}

// SettingNames lists the JSON names accepted by Set, in display order.
var SettingNames = []string{"autoOpenURLs", "vibrateOnScan", "beepOnScan", "saveHistory"}

// Set assigns the setting with the given JSON name (case-insensitive).
func (s *Settings) Set(name string, value bool) error {
	switch strings.ToLower(name) {
	case "autoopenurls":
		s.AutoOpenURLs = value
	case "vibrateonscan":
		s.VibrateOnScan = value
	case "beeponscan":
		s.BeepOnScan = value
	case "savehistory":
		s.SaveHistory = value
	default:
		return fmt.Errorf("unknown setting %q (valid: %s)", name, strings.Join(SettingNames, ", "))
	}
	return nil
}

// Get returns the setting with the given JSON name.
func (s Settings) Get(name string) (bool, error) {
	switch strings.ToLower(name) {
	case "autoopenurls":
		return s.AutoOpenURLs, nil
	case "vibrateonscan":
		return s.VibrateOnScan, nil
	case "beeponscan":
		return s.BeepOnScan, nil
	case "savehistory":
		return s.SaveHistory, nil
	}
	return false, fmt.Errorf("unknown setting %q (valid: %s)", name, strings.Join(SettingNames, ", "))
}

// LoadSettings reads the stored settings over the defaults, so keys missing
// from older files keep their default value. Any failure yields defaults.
func LoadSettings(ctx context.Context, b Backend, logger *slog.Logger) Settings {
	if logger == nil {
		logger = slog.Default()
	}
	s := DefaultSettings()
	data, err := b.Get(ctx, SettingsKey)
	if errors.Is(err, ErrNotFound) {
		return s
	}
	if err != nil {
		logger.Warn("Failed to load settings", "error", err)
		return DefaultSettings()
	}
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("Failed to decode settings", "error", err)
		return DefaultSettings()
	}
	return s
}

// SaveSettings persists s. Failures are logged and returned.
func SaveSettings(ctx context.Context, b Backend, s Settings, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := b.Set(ctx, SettingsKey, data); err != nil {
		logger.Warn("Failed to save settings", "error", err)
		return err
	}
	return nil
}
