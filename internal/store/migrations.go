package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version this build reads and writes.
const ExpectedSchemaVersion = 2

// Migration is one forward schema step.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS estimate_line_items (
					id TEXT NOT NULL,
					project_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					category TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					quantity TEXT NOT NULL DEFAULT '0',
					unit_cost TEXT NOT NULL DEFAULT '0',
					estimated_price TEXT NOT NULL DEFAULT '0',
					estimated_cost TEXT NOT NULL DEFAULT '0',
					PRIMARY KEY (project_id, position)
				)`,
				`CREATE TABLE IF NOT EXISTS quotes (
					id TEXT NOT NULL,
					project_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					line_item_id TEXT NOT NULL,
					quoted_by TEXT NOT NULL DEFAULT '',
					quote_number TEXT NOT NULL DEFAULT '',
					total TEXT NOT NULL DEFAULT '0',
					status TEXT NOT NULL,
					includes_labor INTEGER NOT NULL DEFAULT 0,
					includes_materials INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (project_id, position)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_quotes_line_item ON quotes(line_item_id)`,
				`CREATE TABLE IF NOT EXISTS expenses (
					id TEXT NOT NULL,
					project_id TEXT NOT NULL,
					position INTEGER NOT NULL,
					line_item_id TEXT NOT NULL DEFAULT '',
					amount TEXT NOT NULL DEFAULT '0',
					expense_date TEXT NOT NULL DEFAULT '',
					payee_id TEXT NOT NULL DEFAULT '',
					payee_name TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					transaction_type TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (project_id, position)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_line_item ON expenses(line_item_id)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Track change orders on line items",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`ALTER TABLE estimate_line_items ADD COLUMN source TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE estimate_line_items ADD COLUMN change_order_number TEXT NOT NULL DEFAULT ''`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate brings the database schema up to ExpectedSchemaVersion.
func (s *SQLiteSource) Migrate(ctx context.Context) error {
	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}
	return nil
}
