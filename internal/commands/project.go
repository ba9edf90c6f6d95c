package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/cleared-dev/linecost/internal/config"
	"github.com/cleared-dev/linecost/internal/reconcile"
	"github.com/cleared-dev/linecost/internal/store"
)

// projectFlags are the flags shared by commands that read a project.
type projectFlags struct {
	repo      string
	projectID string
	source    string
}

// loadConfig reads <repo>/linecost.yaml, falling back to defaults when the
// file is absent.
func loadConfig(repoRoot string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(repoRoot, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No config file, using defaults", "repo", repoRoot)
		return config.Default("", ""), nil
	}
	return cfg, err
}

// resolve fills unset flags from the config and returns the absolute repo root.
func (f projectFlags) resolve(cfg *config.Config) (projectFlags, error) {
	abs, err := filepath.Abs(f.repo)
	if err != nil {
		return f, fmt.Errorf("resolving path: %w", err)
	}
	f.repo = abs
	if f.projectID == "" {
		f.projectID = cfg.Project.ID
	}
	if f.projectID == "" {
		return f, errors.New("no project given: pass --project or set project.id in " + config.FileName)
	}
	if f.source == "" {
		f.source = cfg.Source.Kind
	}
	return f, nil
}

// reconcileProject loads the project snapshot and runs the engine over it.
func reconcileProject(ctx context.Context, flags projectFlags) (*config.Config, projectFlags, reconcile.Result, error) {
	abs, err := filepath.Abs(flags.repo)
	if err != nil {
		return nil, flags, reconcile.Result{}, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := loadConfig(abs)
	if err != nil {
		return nil, flags, reconcile.Result{}, err
	}
	flags, err = flags.resolve(cfg)
	if err != nil {
		return nil, flags, reconcile.Result{}, err
	}

	src, err := store.Open(ctx, flags.source, flags.repo, dbPath(flags.repo, cfg))
	if err != nil {
		return nil, flags, reconcile.Result{}, fmt.Errorf("opening %s source: %w", flags.source, err)
	}
	defer src.Close()

	snap, err := src.Load(ctx, flags.projectID)
	if err != nil {
		return nil, flags, reconcile.Result{}, fmt.Errorf("loading project %s: %w", flags.projectID, err)
	}

	res := reconcile.Reconcile(snap.LineItems, snap.Quotes, snap.Expenses, cfg.Policy())
	logOrphans(flags.projectID, res)
	return cfg, flags, res, nil
}

func dbPath(repoRoot string, cfg *config.Config) string {
	if cfg.Source.DBPath == "" || filepath.IsAbs(cfg.Source.DBPath) {
		return cfg.Source.DBPath
	}
	return filepath.Join(repoRoot, cfg.Source.DBPath)
}

func logOrphans(projectID string, res reconcile.Result) {
	s := res.Summary
	if s.OrphanedQuotes > 0 {
		slog.Warn("Quotes reference line items missing from the estimate",
			"project", projectID,
			"quotes", s.OrphanedQuotes)
	}
	if s.OrphanedExpenses.IsPositive() {
		slog.Warn("Expenses allocated to line items missing from the estimate",
			"project", projectID,
			"amount", s.OrphanedExpenses.StringFixed(2))
	}
}
