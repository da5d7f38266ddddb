package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/qrlog/scan"
	"github.com/kylesnowschwartz/qrlog/store"
)

// payloadText joins args, or reads the whole of r when there are none.
// A single trailing newline from `echo` is dropped.
func payloadText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	text = strings.TrimSuffix(text, "\r")
	if text == "" {
		return "", errors.New("no payload given")
	}
	return text, nil
}

// classifyJSON is the --json shape of a classification. Field names follow
// the stored record format.
type classifyJSON struct {
	Type     scan.Type         `json:"type"`
	Fields   map[string]string `json:"parsedData"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle"`
}

func classifyCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Classify a decoded payload without recording it",
		Long: `Classify prints the type, title, subtitle and parsed fields of a decoded
QR/barcode payload. With no arguments the payload is read from stdin, which
keeps multi-line payloads such as vCards intact.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := payloadText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			p := scan.Classify(raw)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(classifyJSON{Type: p.Type, Fields: p.Fields, Title: p.Title, Subtitle: p.Subtitle})
			}
			fmt.Fprintln(out, formatPayload(p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the classification as JSON")
	return cmd
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [text...]",
		Short: "Record a single scan",
		Long: `Add classifies a payload and records it in history as if it had just been
scanned (subject to the saveHistory setting). With no arguments the payload
is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := payloadText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			s := newScanner(a.history, a.settings(ctx), 0, cmd.OutOrStdout())
			record, _ := s.handle(ctx, raw)
			slog.Debug("Recorded scan", "id", record.ID, "type", record.Type)
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	var nulSep bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Record decoded payloads streamed on stdin",
		Long: `Scan reads decoded payloads from stdin, one per line (or NUL-separated with
--null), and records each accepted scan. A payload equal to the previous one
is ignored, as is anything arriving within the cooldown of the last scan.

  zbarcam --raw | qrlog scan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cooldown := viper.GetDuration("scan.cooldown")
			if cooldown < 0 {
				cooldown = defaultScanCooldown
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			settings := a.settings(ctx)
			slog.Info("Scanning", "cooldown", cooldown, "save_history", settings.SaveHistory)

			s := newScanner(a.history, settings, cooldown, cmd.OutOrStdout())
			return s.run(ctx, cmd.InOrStdin(), nulSep)
		},
	}

	cmd.Flags().BoolVarP(&nulSep, "null", "0", false, "payloads are NUL-separated")
	cmd.Flags().Duration("cooldown", defaultScanCooldown, "ignore scans for this long after an accepted one")
	_ = viper.BindPFlag("scan.cooldown", cmd.Flags().Lookup("cooldown"))

	return cmd
}

func historyCmd() *cobra.Command {
	var (
		dump      bool
		savedOnly bool
		typeName  string
		search    string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse scan history",
		Long: `History opens an interactive browser over recorded scans, grouped by day.
The browser reloads when another qrlog process writes the history.
With --dump the grouped list is printed once instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := listFilter{query: search, savedOnly: savedOnly}
			if typeName != "" {
				t, ok := scan.ParseType(typeName)
				if !ok {
					return fmt.Errorf("unknown type %q", typeName)
				}
				filter.typ = t
			}

			// The browser owns the terminal; stderr logs would bleed through.
			if !dump && viper.GetString("logging.file") == "" {
				if err := setupLogging(io.Discard); err != nil {
					return err
				}
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			records := a.history.Load(ctx)
			if dump {
				dumpHistory(cmd.OutOrStdout(), filter.apply(records), time.Now())
				return nil
			}
			return runBrowser(ctx, a.history, records, filter)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print the grouped history and exit")
	cmd.Flags().BoolVar(&savedOnly, "saved", false, "only show saved records")
	cmd.Flags().StringVar(&typeName, "type", "", "only show one payload type (url, wifi, contact, payment, email, phone, sms, geo, text)")
	cmd.Flags().StringVar(&search, "search", "", "only show records whose title, subtitle or payload contains this text")
	return cmd
}

// dumpHistory prints records grouped by day, one line per record.
func dumpHistory(w io.Writer, records []scan.Record, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}
	for i, g := range scan.GroupByDate(records, now) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, g.Label)
		for _, r := range g.Records {
			fmt.Fprintf(w, "%s  %s\n", formatRecordLine(r), scan.FormatTimestamp(r.Timestamp, now))
		}
	}
}

// runBrowser runs the history TUI with live reload.
func runBrowser(ctx context.Context, h *store.History, records []scan.Record, filter listFilter) error {
	m := initialModel(ctx, h, records, detectDarkBackground())
	m.filter = filter
	m.search.SetValue(filter.query)
	m.rebuildRows()

	w, err := newStoreWatcher(ctx, h)
	if err != nil {
		slog.Warn("Live reload disabled", "error", err)
	} else {
		m.watcher = w
		m.watching = true
		m.sub = w.sub
		m.errc = w.errc
		go w.run()
		defer w.stop()
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("history browser failed: %w", err)
	}
	return nil
}

// resolveID finds the record whose id equals arg or uniquely starts with it.
func resolveID(records []scan.Record, arg string) (scan.Record, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return scan.Record{}, errors.New("empty record id")
	}

	var matches []scan.Record
	for _, r := range records {
		if r.ID == arg {
			return r, nil
		}
		if strings.HasPrefix(r.ID, arg) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return scan.Record{}, fmt.Errorf("no record matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return scan.Record{}, fmt.Errorf("id %q is ambiguous: matches %s", arg, formatCount(len(matches)))
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id>",
		Short: "Toggle the saved flag of a record",
		Long:  `Save marks a record as saved, or unsaves it if it already is. Saved records survive clear. The id may be any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			r, err := resolveID(a.history.Load(ctx), args[0])
			if err != nil {
				return err
			}
			records, ok := a.history.ToggleSaved(ctx, r.ID)
			if !ok {
				return fmt.Errorf("record %s disappeared", shortID(r.ID))
			}

			state := "unsaved"
			for _, updated := range records {
				if updated.ID == r.ID && updated.IsSaved {
					state = "saved"
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, shortID(r.ID))
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete records from history",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			records := a.history.Load(ctx)

			ids := make([]string, 0, len(args))
			for _, arg := range args {
				r, err := resolveID(records, arg)
				if err != nil {
					return err
				}
				ids = append(ids, r.ID)
			}

			remaining := a.history.DeleteMany(ctx, ids)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s, %d left\n", formatCount(len(records)-len(remaining)), len(remaining))
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all unsaved records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			before := len(a.history.Load(ctx))
			kept := a.history.Clear(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s, kept %d saved\n", formatCount(before-len(kept)), len(kept))
			return nil
		},
	}
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show scan settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			printSettings(cmd.OutOrStdout(), a.settings(cmd.Context()))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <true|false>",
		Short: "Change a scan setting",
		Long:  "Set changes one of: " + strings.Join(store.SettingNames, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: want true or false", args[1])
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			settings := a.settings(ctx)
			if err := settings.Set(args[0], value); err != nil {
				return err
			}
			if err := store.SaveSettings(ctx, a.backend, settings, slog.Default()); err != nil {
				return err
			}
			printSettings(cmd.OutOrStdout(), settings)
			return nil
		},
	})

	return cmd
}

// printSettings prints one "name  value" line per setting.
func printSettings(w io.Writer, s store.Settings) {
	width := 0
	for _, name := range store.SettingNames {
		width = max(width, len(name))
	}
	for _, name := range store.SettingNames {
		v, _ := s.Get(name)
		fmt.Fprintf(w, "%-*s  %t\n", width, name, v)
	}
}
