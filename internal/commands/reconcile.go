package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/linecost/internal/report"
)

func newReconcileCommand() *cobra.Command {
	var flags projectFlags
	var sortBy string
	var attention bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a project's estimate, quotes and expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sortBy != "risk" && sortBy != "input" {
				return fmt.Errorf("invalid --sort %q: want risk or input", sortBy)
			}

			cfg, flags, res, err := reconcileProject(cmd.Context(), flags)
			if err != nil {
				return err
			}

			name := cfg.Project.Name
			if name == "" {
				name = flags.projectID
			}
			return report.Render(cmd.OutOrStdout(), res, report.Options{
				ProjectName:   name,
				Currency:      cfg.Project.Currency,
				ByRisk:        sortBy == "risk",
				AttentionOnly: attention,
			})
		},
	}

	addProjectFlags(cmd, &flags)
	cmd.Flags().StringVar(&sortBy, "sort", "risk", "line order (risk, input)")
	cmd.Flags().BoolVar(&attention, "attention", false, "only show line items needing attention")

	return cmd
}

func addProjectFlags(cmd *cobra.Command, flags *projectFlags) {
	cmd.Flags().StringVar(&flags.repo, "repo", ".", "repository directory")
	cmd.Flags().StringVar(&flags.projectID, "project", "", "project ID (default from config)")
	cmd.Flags().StringVar(&flags.source, "source", "", "data source (csv, sqlite; default from config)")
}
