package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/linecost/internal/buildinfo"
	"github.com/cleared-dev/linecost/internal/config"
	"github.com/cleared-dev/linecost/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:     "linecost",
		Short:   "Line-item cost reconciliation for project estimates, quotes and expenses",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, format := logSettings(cmd, logLevel, logFormat)
			return logging.Setup(os.Stderr, level, format)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newReconcileCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportSQLiteCommand())

	return rootCmd
}

// logSettings returns the log level and format to use. Flags set on the
// command line win over the repository config's logging section, which wins
// over the flag defaults.
func logSettings(cmd *cobra.Command, level, format string) (string, string) {
	flags := cmd.Flags()
	if flags.Changed("log-level") && flags.Changed("log-format") {
		return level, format
	}

	repo := "."
	if f := flags.Lookup("repo"); f != nil {
		repo = f.Value.String()
	}
	// A missing or broken config is reported by the command itself.
	cfg, err := config.Load(filepath.Join(repo, config.FileName))
	if err != nil {
		return level, format
	}

	if !flags.Changed("log-level") && cfg.Logging.Level != "" {
		level = cfg.Logging.Level
	}
	if !flags.Changed("log-format") && cfg.Logging.Format != "" {
		format = cfg.Logging.Format
	}
	return level, format
}
