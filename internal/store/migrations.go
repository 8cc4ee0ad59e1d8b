package store

import (
	"fmt"

	"estatekeeper/internal/logging"
)

// Migration defines an additive column migration. These handle databases
// created by earlier releases whose tables exist but are missing newer
// columns; CREATE TABLE IF NOT EXISTS alone never adds them.
type Migration struct {
	Table  string
	Column string
	Def    string
}

// pendingMigrations lists all schema migrations to apply on open.
var pendingMigrations = []Migration{
	// Task cross-references (added with linked records)
	{"tasks", "related_ids", "TEXT NOT NULL DEFAULT ''"},
	// Asset disposal tracking (added with the disposal workflow)
	{"assets", "disposed", "INTEGER NOT NULL DEFAULT 0"},
	{"assets", "disposed_note", "TEXT NOT NULL DEFAULT ''"},
	// Expense receipt link (added with document attachments)
	{"expenses", "receipt_id", "TEXT NOT NULL DEFAULT ''"},
	// Rule 10.5 notice tracking per beneficiary
	{"beneficiaries", "rule105_notice_sent_date", "TEXT NOT NULL DEFAULT ''"},
}

// migrate applies any missing column migrations.
func (s *Store) migrate() error {
	for _, m := range pendingMigrations {
		exists, err := s.columnExists(m.Table, m.Column)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		logging.Store("Migrating: adding %s.%s", m.Table, m.Column)
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to add column %s.%s: %w", m.Table, m.Column, err)
		}
	}
	return nil
}

func (s *Store) columnExists(table, column string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	return count > 0, nil
}
