// Package store implements the local record store over SQLite.
//
// Six record collections (tasks, documents, document blobs, assets, expenses,
// beneficiaries) plus one key-value table for the profile, settings, and
// metadata. All multi-step writes go through RunInTx: either every write in
// the function becomes visible together on commit, or none do. Subscribers
// registered on a collection are notified after each committed transaction
// that touched it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"estatekeeper/internal/logging"

	_ "github.com/mattn/go-sqlite3"
)

// Collection names a record collection for subscriptions and notifications.
type Collection string

const (
	Tasks         Collection = "tasks"
	Documents     Collection = "documents"
	DocumentBlobs Collection = "document_blobs"
	Assets        Collection = "assets"
	Expenses      Collection = "expenses"
	Beneficiaries Collection = "beneficiaries"
	KV            Collection = "kv"
)

// AllCollections lists every collection, kv last.
var AllCollections = []Collection{Tasks, Documents, DocumentBlobs, Assets, Expenses, Beneficiaries, KV}

// Store is the persistent record store. A single connection guarded by a
// mutex: every operation's synchronous portion runs uninterrupted, which is
// the only ordering guarantee the application needs.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	hub    *hub
}

// Open initializes the SQLite database at the given path. Pass ":memory:"
// for an ephemeral store (tests).
func Open(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	logging.Store("Opening record store at %s", path)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logging.StoreDebug("Failed to enable foreign keys: %v", err)
	}

	s := &Store{db: db, dbPath: path, hub: newHub()}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("Schema initialized")

	return s, nil
}

// Close closes the database and drops all subscriptions.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hub.closeAll()
	return s.db.Close()
}

// initSchema creates all tables and indexes if they do not exist.
func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			status TEXT NOT NULL,
			due_date TEXT NOT NULL DEFAULT '',
			assigned_to TEXT NOT NULL DEFAULT '[]',
			related_ids TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			template_key TEXT NOT NULL DEFAULT ''
		)`,
		// Template keys link checklist tasks to their templates; at most one
		// task per key.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_template_key
			ON tasks(template_key) WHERE template_key != ''`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			size INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '[]',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT '',
			blob_ref TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at)`,
		`CREATE TABLE IF NOT EXISTS document_blobs (
			id TEXT PRIMARY KEY,
			data BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS assets (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			probate INTEGER NOT NULL DEFAULT 0,
			pa_inheritance_taxable INTEGER NOT NULL DEFAULT 0,
			ownership_note TEXT NOT NULL DEFAULT '',
			dod_value REAL NOT NULL DEFAULT 0,
			valuation_notes TEXT NOT NULL DEFAULT '',
			documents TEXT NOT NULL DEFAULT '[]',
			disposed INTEGER NOT NULL DEFAULT 0,
			disposed_note TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			payee TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			amount REAL NOT NULL,
			paid_from TEXT NOT NULL,
			reimbursed INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			receipt_id TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE TABLE IF NOT EXISTS beneficiaries (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			relation TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			share_pct REAL NOT NULL DEFAULT 0,
			rule105_notice_sent_date TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			logging.Get(logging.CategoryStore).Error("Schema statement failed: %v", err)
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// Tx groups writes that must commit atomically. Collection methods on Tx
// record which collections they touch; subscribers of those collections are
// notified once, after commit.
type Tx struct {
	tx      *sql.Tx
	touched map[Collection]bool
}

func (t *Tx) touch(c Collection) {
	t.touched[c] = true
}

// RunInTx executes fn inside a single transaction. Any error from fn (or
// from commit) rolls the whole transaction back; no partial writes become
// visible. On success, subscribers of every touched collection are notified.
func (s *Store) RunInTx(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	t := &Tx{tx: tx, touched: make(map[Collection]bool)}
	if err := fn(t); err != nil {
		logging.StoreDebug("Transaction rolled back: %v", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for c := range t.touched {
		s.hub.notify(c)
	}
	return nil
}

// ClearAll empties every collection including the key-value table, in one
// transaction. This is the factory reset, distinct from import's replace-all
// (which preserves the kv table structure and rewrites its keys).
func (s *Store) ClearAll() error {
	logging.Store("Clearing all collections")
	return s.RunInTx(func(tx *Tx) error {
		for _, c := range AllCollections {
			if _, err := tx.tx.Exec(fmt.Sprintf("DELETE FROM %s", c)); err != nil {
				return fmt.Errorf("failed to clear %s: %w", c, err)
			}
			tx.touch(c)
		}
		return nil
	})
}

// ClearRecords empties the six mutable record collections but leaves the
// key-value table alone. Used by backup import before bulk insert.
func (t *Tx) ClearRecords() error {
	for _, c := range []Collection{Tasks, Documents, DocumentBlobs, Assets, Expenses, Beneficiaries} {
		if _, err := t.tx.Exec(fmt.Sprintf("DELETE FROM %s", c)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c, err)
		}
		t.touch(c)
	}
	return nil
}
