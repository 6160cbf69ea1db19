// Package store provides SQLite-backed persistence for stimer.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fentz26/stimer/internal/models"
	_ "modernc.org/sqlite"
)

// Store provides access to the stimer SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and ensures the schema exists.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// One writer, one invocation at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the tasks table if absent. There are no versioned migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		record TEXT NOT NULL,
		start INTEGER NOT NULL,
		"end" INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_start ON tasks(start);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Insert appends an open task starting at start.
func (s *Store) Insert(record string, start int64) error {
	_, err := s.db.Exec(
		`INSERT INTO tasks (record, start) VALUES (?, ?)`,
		record, start,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// CloseOpen sets end on every open task and returns how many rows it closed.
func (s *Store) CloseOpen(end int64) (int64, error) {
	result, err := s.db.Exec(`UPDATE tasks SET "end" = ? WHERE "end" IS NULL`, end)
	if err != nil {
		return 0, fmt.Errorf("close open tasks: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}

// SelectOpen returns all open tasks in insertion order.
func (s *Store) SelectOpen() ([]models.OpenTask, error) {
	rows, err := s.db.Query(`SELECT record, start FROM tasks WHERE "end" IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query open tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.OpenTask
	for rows.Next() {
		var task models.OpenTask
		if err := rows.Scan(&task.Record, &task.Start); err != nil {
			return nil, fmt.Errorf("scan open task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// SelectClosedInRange returns closed tasks whose start lies in [lo, hi], both ends inclusive.
func (s *Store) SelectClosedInRange(lo, hi int64) ([]models.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, record, start, "end" FROM tasks WHERE start >= ? AND start <= ? AND "end" IS NOT NULL ORDER BY id`,
		lo, hi,
	)
	if err != nil {
		return nil, fmt.Errorf("query closed tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		var end sql.NullInt64
		if err := rows.Scan(&task.ID, &task.Record, &task.Start, &end); err != nil {
			return nil, fmt.Errorf("scan closed task: %w", err)
		}
		if end.Valid {
			task.End = &end.Int64
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
