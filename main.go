// editkit — localization editor toolkit: translation history with
// existing-translation equivalence matching.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/l10n-tools/editkit/config"
	"github.com/l10n-tools/editkit/fields"
	"github.com/l10n-tools/editkit/format"
	"github.com/l10n-tools/editkit/history"
	"github.com/l10n-tools/editkit/i18n"
	"github.com/l10n-tools/editkit/langmeta"
	"github.com/l10n-tools/editkit/match"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "editkit",
		Short: "Localization editor toolkit with translation history matching",
		Long: `editkit — localization editor toolkit.

Keeps a per-project translation history and answers the editor's core
question: is the translation being typed identical to the active one, or to
any prior translation of the same string, across serialization formats
(plain text and Fluent FTL)?

Commands:
  status      Show project configuration and history statistics
  history     Add, list, and activate saved translations
  check       Match a live edit against the active translation and history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug diagnostics")

	root.AddCommand(
		newStatusCmd(),
		newHistoryCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// openStore loads the project config and opens its history database.
func openStore() (*config.File, *history.Store, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := history.Open(cfg.DBPath(rootDir))
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show project configuration and history statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Printf("Project root:   %s\n", rootDir)
			fmt.Printf("History DB:     %s\n", cfg.DBPath(rootDir))
			fmt.Printf("Source lang:    %s\n", cfg.SourceLang)
			fmt.Printf("Default format: %s\n", cfg.DefaultFormat)

			if len(cfg.Locales) > 0 {
				fmt.Println("Locales:")
				for _, loc := range cfg.Locales {
					meta := langmeta.Resolve(loc)
					fmt.Printf("  %s %-8s %s\n", meta.Flag, loc, meta.Native)
				}
			}

			records, strs, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("History:        %d translation(s) across %d string(s)\n", records, strs)
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// history
// ---------------------------------------------------------------------------

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved translations",
	}
	cmd.AddCommand(newHistoryAddCmd(), newHistoryListCmd(), newHistoryActivateCmd())
	return cmd
}

func newHistoryAddCmd() *cobra.Command {
	var activate bool
	cmd := &cobra.Command{
		Use:   "add <key> <locale> [text]",
		Short: "Save a translation (text from argument or stdin)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, locale := args[0], args[1]

			var text string
			if len(args) == 3 {
				text = args[2]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = string(data)
			}

			cfg, store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			// Reject text the declared format cannot parse; history must
			// stay loadable by the matcher.
			f := cfg.FormatFor(key)
			if _, err := format.Parse(f, text); err != nil {
				return fmt.Errorf("text is not valid %s: %w", f, err)
			}

			rec, err := store.Add(cmd.Context(), key, locale, text)
			if err != nil {
				return err
			}
			if activate {
				if err := store.Activate(cmd.Context(), rec.ID); err != nil {
					return err
				}
			}
			logSuccess("saved %s/%s as %s", key, locale, rec.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&activate, "activate", false, "Mark the saved translation as active")
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <key> <locale>",
		Short: "List saved translations, newest first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				logInfo("no translations for %s/%s", args[0], args[1])
				return nil
			}
			for _, rec := range recs {
				marker := " "
				if rec.Active {
					marker = "*"
				}
				fmt.Printf("%s %s  %s  %q\n", marker, rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Text)
			}
			return nil
		},
	}
}

func newHistoryActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Mark a saved translation as the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Activate(cmd.Context(), args[0]); err != nil {
				return err
			}
			logSuccess("activated %s", args[0])
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// check
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	var sets []string
	var text string

	cmd := &cobra.Command{
		Use:   "check <key> <locale>",
		Short: "Match a live edit against the active translation and history",
		Long: `check reports whether an edit is identical to an existing translation.

The edit starts from the active translation's fields. Individual fields are
overridden with --set ("value" for the message value, an attribute name
otherwise); alternatively --text supplies a whole edited serialization.

A "no identical translation" outcome is normal state, not an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, locale := args[0], args[1]

			cfg, store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			return runCheck(cmd.Context(), cmd.OutOrStdout(), store, cfg, key, locale, sets, text)
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Override one field: name=text (repeatable)")
	cmd.Flags().StringVar(&text, "text", "", "Full edited serialization instead of --set")
	return cmd
}

func runCheck(ctx context.Context, out io.Writer, store *history.Store, cfg *config.File, key, locale string, sets []string, text string) error {
	f := cfg.FormatFor(key)

	active, err := store.Active(ctx, key, locale)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no active translation for %s/%s", key, locale)
	}

	initial, err := format.Parse(f, active.Text)
	if err != nil {
		return fmt.Errorf("active translation is not valid %s: %w", f, err)
	}

	fs := fields.Project(initial)
	if text != "" {
		edited, err := format.Parse(f, text)
		if err != nil {
			return fmt.Errorf("--text is not valid %s: %w", f, err)
		}
		fs = fields.Project(edited)
	}
	for _, set := range sets {
		if err := applyFieldOverride(fs, set); err != nil {
			return err
		}
	}

	recs, err := store.List(ctx, key, locale)
	if err != nil {
		return err
	}

	res, err := match.Existing(match.Params{
		Active:  active,
		Format:  f,
		History: recs,
		Fields:  fs,
		Initial: initial,
	})
	if err != nil {
		return err
	}

	switch {
	case res.Active != nil:
		fmt.Fprintf(out, "%s (%s)\n", i18n.T("matches the active translation"), active.ID)
	case res.Record != nil:
		fmt.Fprintf(out, "%s %s\n", i18n.T("matches history record"), res.Record.ID)
	default:
		fmt.Fprintln(out, i18n.T("no identical translation found"))
	}
	return nil
}

// applyFieldOverride applies one "name=text" override to the projected
// fields. "value" names the message value slot; any other name refers to an
// attribute.
func applyFieldOverride(fs []fields.Field, set string) error {
	name, val, ok := strings.Cut(set, "=")
	if !ok {
		return fmt.Errorf("invalid --set %q (want name=text)", set)
	}
	target := fields.Path{"value"}
	if name != "value" {
		target = fields.Path{"attr", name}
	}
	for i := range fs {
		if fs[i].Path.Equal(target) {
			fs[i].Value = val
			return nil
		}
	}
	return fmt.Errorf("no field named %q (available: %s)", name, fieldNames(fs))
}

func fieldNames(fs []fields.Field) string {
	names := make([]string, len(fs))
	for i, f := range fs {
		if f.Name == "" {
			names[i] = "value"
		} else {
			names[i] = f.Name
		}
	}
	return strings.Join(names, ", ")
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("editkit %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
