// Package store supplies immutable per-project snapshots of estimate line
// items, quotes and expenses. The reconciliation engine never reads storage
// itself; callers load a Snapshot here and hand it over.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/cleared-dev/linecost/internal/model"
)

// ErrUnknownSource is returned by Open for an unsupported source kind.
var ErrUnknownSource = errors.New("unknown data source")

// Source kinds accepted by Open.
const (
	KindCSV    = "csv"
	KindSQLite = "sqlite"
)

// Snapshot is every record of one project at a point in time.
type Snapshot struct {
	LineItems []model.EstimateLineItem
	Quotes    []model.Quote
	Expenses  []model.Expense
}

// Source loads project snapshots.
type Source interface {
	Load(ctx context.Context, projectID string) (Snapshot, error)
	Close() error
}

// Open returns the Source of the given kind. repoRoot anchors the CSV
// layout; dbPath is only used for SQLite.
func Open(ctx context.Context, kind, repoRoot, dbPath string) (Source, error) {
	switch kind {
	case "", KindCSV:
		return NewCSVSource(repoRoot), nil
	case KindSQLite:
		s, err := OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
}

// filterProject keeps the records belonging to projectID. Records with an
// empty project ID are assumed to belong to the project being loaded.
func filterProject(snap Snapshot, projectID string) Snapshot {
	var out Snapshot
	for _, li := range snap.LineItems {
		if li.ProjectID == "" || li.ProjectID == projectID {
			out.LineItems = append(out.LineItems, li)
		}
	}
	for _, q := range snap.Quotes {
		if q.ProjectID == "" || q.ProjectID == projectID {
			out.Quotes = append(out.Quotes, q)
		}
	}
	for _, e := range snap.Expenses {
		if e.ProjectID == "" || e.ProjectID == projectID {
			out.Expenses = append(out.Expenses, e)
		}
	}
	return out
}
