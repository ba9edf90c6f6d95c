package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// File names inside projects/<id>/.
const (
	LineItemsFile = "estimate-line-items.csv"
	QuotesFile    = "quotes.csv"
	ExpensesFile  = "expenses.csv"
)

// CSVSource reads projects from <repoRoot>/projects/<id>/*.csv.
type CSVSource struct {
	repoRoot string
}

// NewCSVSource creates a CSVSource rooted at repoRoot.
func NewCSVSource(repoRoot string) *CSVSource {
	return &CSVSource{repoRoot: repoRoot}
}

// ProjectDir returns the directory holding a project's CSV files.
func (s *CSVSource) ProjectDir(projectID string) string {
	return filepath.Join(s.repoRoot, "projects", projectID)
}

// Load reads the three CSV files for projectID. Missing files read as empty.
func (s *CSVSource) Load(_ context.Context, projectID string) (Snapshot, error) {
	dir := s.ProjectDir(projectID)
	var snap Snapshot
	var err error

	if snap.LineItems, err = readFile(filepath.Join(dir, LineItemsFile), ReadLineItems); err != nil {
		return Snapshot{}, err
	}
	if snap.Quotes, err = readFile(filepath.Join(dir, QuotesFile), ReadQuotes); err != nil {
		return Snapshot{}, err
	}
	if snap.Expenses, err = readFile(filepath.Join(dir, ExpensesFile), ReadExpenses); err != nil {
		return Snapshot{}, err
	}

	snap = filterProject(snap, projectID)
	slog.Debug("Loaded CSV snapshot",
		"project", projectID,
		"line_items", len(snap.LineItems),
		"quotes", len(snap.Quotes),
		"expenses", len(snap.Expenses))
	return snap, nil
}

// Save writes a snapshot as the project's CSV files, replacing existing ones.
func (s *CSVSource) Save(projectID string, snap Snapshot) error {
	dir := s.ProjectDir(projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	if err := writeFile(filepath.Join(dir, LineItemsFile), func(w io.Writer) error {
		return WriteLineItems(w, snap.LineItems)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, QuotesFile), func(w io.Writer) error {
		return WriteQuotes(w, snap.Quotes)
	}); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, ExpensesFile), func(w io.Writer) error {
		return WriteExpenses(w, snap.Expenses)
	})
}

// Close is a no-op; CSV files are opened per Load.
func (s *CSVSource) Close() error { return nil }

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
