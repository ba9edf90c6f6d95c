package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/linecost/internal/store"
)

func newImportSQLiteCommand() *cobra.Command {
	var flags projectFlags
	var db string

	cmd := &cobra.Command{
		Use:   "import-sqlite",
		Short: "Copy a project's CSV files into the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(flags.repo)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			cfg, err := loadConfig(abs)
			if err != nil {
				return err
			}
			flags, err = flags.resolve(cfg)
			if err != nil {
				return err
			}

			path := db
			if path == "" {
				path = dbPath(flags.repo, cfg)
			}

			ctx := cmd.Context()
			snap, err := store.NewCSVSource(flags.repo).Load(ctx, flags.projectID)
			if err != nil {
				return fmt.Errorf("loading project %s: %w", flags.projectID, err)
			}

			dst, err := store.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer dst.Close()

			if err := dst.Migrate(ctx); err != nil {
				return err
			}
			if err := dst.SaveSnapshot(ctx, flags.projectID, snap); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d line items, %d quotes, %d expenses into %s\n",
				len(snap.LineItems), len(snap.Quotes), len(snap.Expenses), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.repo, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&flags.projectID, "project", "", "project ID (default from config)")
	cmd.Flags().StringVar(&db, "db", "", "database file (default source.db_path from config)")

	return cmd
}
