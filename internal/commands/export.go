package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/linecost/internal/export"
)

func newExportCommand() *cobra.Command {
	var flags projectFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export reconciled line items as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, flags, res, err := reconcileProject(cmd.Context(), flags)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = filepath.Join(flags.repo, "exports", flags.projectID+"-reconciliation.csv")
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("creating export dir: %w", err)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()

			if err := export.Write(f, res.LineItems); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d line items to %s\n", len(res.LineItems), path)
			return nil
		},
	}

	addProjectFlags(cmd, &flags)
	cmd.Flags().StringVar(&out, "out", "", "output file (default exports/<project>-reconciliation.csv)")

	return cmd
}
