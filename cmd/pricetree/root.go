package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/pricetree/internal/logging"
	"github.com/aretw0/pricetree/internal/presentation/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "pricetree",
	Short: "Pricetree previews hierarchical pricing overrides for a contract",
	Long: `Pricetree loads a contract's segments, categories, items and persisted associations
from a scenario file, replays an edit script and reports the resulting tree or the
create/update/delete plan.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("format", "auto", "Output format (markdown, json, yaml, auto)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level), nil
}

// outputFormat resolves --format. "auto" means rendered markdown on a terminal and JSON
// when stdout is piped.
func outputFormat(cmd *cobra.Command) (report.Format, bool, error) {
	raw, _ := cmd.Flags().GetString("format")
	tty := isTerminal(cmd)
	if raw == "auto" {
		if tty {
			return report.FormatMarkdown, true, nil
		}
		return report.FormatJSON, false, nil
	}
	f, err := report.ParseFormat(raw)
	return f, tty, err
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
