package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/linecost/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteSource stores project snapshots in a SQLite database. Row order is
// kept in a position column so loads return records in insertion order.
type SQLiteSource struct {
	db     *sql.DB
	dbPath string
}

// OpenSQLite opens (creating if needed) the database at dbPath. Call Migrate
// before use.
func OpenSQLite(dbPath string) (*SQLiteSource, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite source: database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteSource{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Load reads every record of projectID.
func (s *SQLiteSource) Load(ctx context.Context, projectID string) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.LineItems, err = s.loadLineItems(ctx, projectID); err != nil {
		return Snapshot{}, err
	}
	if snap.Quotes, err = s.loadQuotes(ctx, projectID); err != nil {
		return Snapshot{}, err
	}
	if snap.Expenses, err = s.loadExpenses(ctx, projectID); err != nil {
		return Snapshot{}, err
	}

	slog.Debug("Loaded SQLite snapshot",
		"db", s.dbPath,
		"project", projectID,
		"line_items", len(snap.LineItems),
		"quotes", len(snap.Quotes),
		"expenses", len(snap.Expenses))
	return snap, nil
}

// SaveSnapshot replaces every record of projectID with snap in one
// transaction.
func (s *SQLiteSource) SaveSnapshot(ctx context.Context, projectID string, snap Snapshot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"estimate_line_items", "quotes", "expenses"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id = ?", projectID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, li := range snap.LineItems {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO estimate_line_items
				(id, project_id, position, category, description, quantity, unit_cost,
				 estimated_price, estimated_cost, source, change_order_number)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			li.ID, projectID, i, string(li.Category), li.Description,
			li.Quantity.String(), li.UnitCost.String(),
			li.EstimatedPrice.String(), li.EstimatedCost.String(),
			string(li.Source), li.ChangeOrderNumber)
		if err != nil {
			return fmt.Errorf("failed to insert line item %s: %w", li.ID, err)
		}
	}

	for i, q := range snap.Quotes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO quotes
				(id, project_id, position, line_item_id, quoted_by, quote_number, total,
				 status, includes_labor, includes_materials)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, projectID, i, q.LineItemID, q.QuotedBy, q.QuoteNumber,
			q.Total.String(), string(q.Status), q.IncludesLabor, q.IncludesMaterials)
		if err != nil {
			return fmt.Errorf("failed to insert quote %s: %w", q.ID, err)
		}
	}

	for i, e := range snap.Expenses {
		date := ""
		if !e.ExpenseDate.IsZero() {
			date = e.ExpenseDate.Format(dateFormat)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expenses
				(id, project_id, position, line_item_id, amount, expense_date, payee_id,
				 payee_name, description, transaction_type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, projectID, i, e.LineItemID, e.Amount.String(), date,
			e.PayeeID, e.PayeeName, e.Description, e.TransactionType)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteSource) loadLineItems(ctx context.Context, projectID string) ([]model.EstimateLineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, category, description, quantity, unit_cost,
			estimated_price, estimated_cost, source, change_order_number
		FROM estimate_line_items WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var items []model.EstimateLineItem
	for rows.Next() {
		var li model.EstimateLineItem
		var category, source, qty, unitCost, price, cost string
		if err := rows.Scan(&li.ID, &li.ProjectID, &category, &li.Description,
			&qty, &unitCost, &price, &cost, &source, &li.ChangeOrderNumber); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		li.Category = parseCategory(category)
		li.Source = model.LineItemSource(source)
		if li.Quantity, err = parseAmount("quantity", qty); err != nil {
			return nil, err
		}
		if li.UnitCost, err = parseAmount("unit_cost", unitCost); err != nil {
			return nil, err
		}
		if li.EstimatedPrice, err = parseAmount("estimated_price", price); err != nil {
			return nil, err
		}
		if li.EstimatedCost, err = parseAmount("estimated_cost", cost); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, rows.Err()
}

func (s *SQLiteSource) loadQuotes(ctx context.Context, projectID string) ([]model.Quote, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, line_item_id, quoted_by, quote_number, total, status,
			includes_labor, includes_materials
		FROM quotes WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []model.Quote
	for rows.Next() {
		var q model.Quote
		var total, status string
		if err := rows.Scan(&q.ID, &q.ProjectID, &q.LineItemID, &q.QuotedBy, &q.QuoteNumber,
			&total, &status, &q.IncludesLabor, &q.IncludesMaterials); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Status = model.QuoteState(status)
		if q.Total, err = parseAmount("total", total); err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (s *SQLiteSource) loadExpenses(ctx context.Context, projectID string) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, line_item_id, amount, expense_date, payee_id, payee_name,
			description, transaction_type
		FROM expenses WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount, date string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.LineItemID, &amount, &date,
			&e.PayeeID, &e.PayeeName, &e.Description, &e.TransactionType); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = parseAmount("amount", amount); err != nil {
			return nil, err
		}
		if date != "" {
			if e.ExpenseDate, err = time.Parse(dateFormat, date); err != nil {
				return nil, fmt.Errorf("parsing expense_date %q: %w", date, err)
			}
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}
