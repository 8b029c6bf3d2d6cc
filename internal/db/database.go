// Package db is the SQLite store behind the classroom board: assignment
// rows, cell comments, the legacy lecture schedule table and the audit log.
package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB wraps sql.DB for the classroom board.
type DB struct {
	*sql.DB
	path   string
	logger *zerolog.Logger
}

// NewDB opens the database at path and runs migrations.
func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{DB: db, path: path, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// Classroom assignments: one row per assigned cell. Unassigned cells
		// have no row.
		`CREATE TABLE IF NOT EXISTS classroom_assignments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			time_slot TEXT NOT NULL,
			class_group TEXT NOT NULL,
			classroom TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Cell comments: at most one per (date, time_slot, class_group).
		`CREATE TABLE IF NOT EXISTS classroom_comments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			time_slot TEXT NOT NULL,
			class_group TEXT NOT NULL,
			classroom TEXT,
			comment TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(date, time_slot, class_group)
		)`,

		// Legacy lecture schedule: one wide row per (date, period) with
		// per-group lecture/teacher columns, filled by the external
		// scheduling source. Read-only here.
		`CREATE TABLE IF NOT EXISTS lecture_schedule (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			period TEXT NOT NULL,
			c1a_lecture TEXT, c1a_teacher TEXT,
			c1b_lecture TEXT, c1b_teacher TEXT,
			c2a_lecture TEXT, c2a_teacher TEXT,
			c2b_lecture TEXT, c2b_teacher TEXT,
			c3a_lecture TEXT, c3a_teacher TEXT,
			c3b_lecture TEXT, c3b_teacher TEXT,
			c1n_lecture TEXT, c1n_teacher TEXT,
			c2n_lecture TEXT, c2n_teacher TEXT,
			c3n_lecture TEXT, c3n_teacher TEXT
		)`,

		// Audit log of admin writes.
		`CREATE TABLE IF NOT EXISTS audit_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			actor TEXT NOT NULL,
			action TEXT NOT NULL,
			date TEXT NOT NULL,
			detail TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_assignments_date ON classroom_assignments(date)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_date ON classroom_comments(date)`,
		`CREATE INDEX IF NOT EXISTS idx_lecture_schedule_date ON lecture_schedule(date)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("exec migration %s: %w", trimSQL(q), err)
		}
	}
	return nil
}

func trimSQL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
