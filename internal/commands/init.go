package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/linecost/internal/config"
	"github.com/cleared-dev/linecost/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var projectID string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new linecost repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, projectID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&projectID, "project", "default", "project ID")

	return cmd
}

func runInit(dir, name, projectID string) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	if err := os.MkdirAll(filepath.Join(dir, "exports"), 0o755); err != nil {
		return fmt.Errorf("creating directory exports: %w", err)
	}

	// Write linecost.yaml.
	cfg := config.Default(name, projectID)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write header-only project files.
	src := store.NewCSVSource(dir)
	if err := src.Save(projectID, store.Snapshot{}); err != nil {
		return fmt.Errorf("writing project files: %w", err)
	}

	// Write .gitignore.
	gitignore := "exports/\n*.db\n*.db-wal\n*.db-shm\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Printf("Initialized linecost repository at %s (project %s)\n", dir, projectID)
	return nil
}
