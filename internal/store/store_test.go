package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file and parent directory were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewReopenKeepsRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := s.Insert("writing", 100); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s.Close()

	open, err := s.SelectOpen()
	if err != nil {
		t.Fatalf("SelectOpen failed: %v", err)
	}
	if len(open) != 1 || open[0].Record != "writing" || open[0].Start != 100 {
		t.Errorf("Unexpected open tasks after reopen: %+v", open)
	}
}

func TestInsertAndSelectOpen(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	open, err := s.SelectOpen()
	if err != nil {
		t.Fatalf("SelectOpen failed: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("Expected no open tasks, got %d", len(open))
	}

	if err := s.Insert("b", 200); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := s.Insert("a", 100); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := s.Insert("", 300); err != nil {
		t.Fatalf("Insert with empty record failed: %v", err)
	}

	open, err = s.SelectOpen()
	if err != nil {
		t.Fatalf("SelectOpen failed: %v", err)
	}
	if len(open) != 3 {
		t.Fatalf("Expected 3 open tasks, got %d", len(open))
	}
	// Insertion order, not start order
	if open[0].Record != "b" || open[1].Record != "a" || open[2].Record != "" {
		t.Errorf("Unexpected order: %+v", open)
	}
}

func TestCloseOpen(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	n, err := s.CloseOpen(500)
	if err != nil {
		t.Fatalf("CloseOpen on empty table failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 rows affected, got %d", n)
	}

	s.Insert("a", 100)
	s.Insert("b", 200)

	n, err = s.CloseOpen(500)
	if err != nil {
		t.Fatalf("CloseOpen failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 rows affected, got %d", n)
	}

	open, _ := s.SelectOpen()
	if len(open) != 0 {
		t.Errorf("Expected no open tasks after CloseOpen, got %d", len(open))
	}

	// Closed rows keep their end
	n, _ = s.CloseOpen(900)
	if n != 0 {
		t.Errorf("Expected closed rows to be left alone, got %d affected", n)
	}
	tasks, err := s.SelectClosedInRange(0, 1000)
	if err != nil {
		t.Fatalf("SelectClosedInRange failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("Expected 2 closed tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.End == nil || *task.End != 500 {
			t.Errorf("Expected end 500 for %q, got %v", task.Record, task.End)
		}
	}
}

func TestSelectClosedInRange(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	// start values around a [1000, 2000] window
	for _, start := range []int64{999, 1000, 1500, 2000, 2001} {
		if err := s.Insert("r", start); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if _, err := s.CloseOpen(start + 10); err != nil {
			t.Fatalf("CloseOpen failed: %v", err)
		}
	}
	// open task inside the window must be ignored
	s.Insert("open", 1200)

	tasks, err := s.SelectClosedInRange(1000, 2000)
	if err != nil {
		t.Fatalf("SelectClosedInRange failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d: %+v", len(tasks), tasks)
	}
	wantStarts := []int64{1000, 1500, 2000}
	for i, task := range tasks {
		if task.Start != wantStarts[i] {
			t.Errorf("tasks[%d].Start = %d, want %d", i, task.Start, wantStarts[i])
		}
		if task.End == nil || *task.End != task.Start+10 {
			t.Errorf("tasks[%d].End = %v, want %d", i, task.End, task.Start+10)
		}
		if task.Duration() != 10 {
			t.Errorf("tasks[%d].Duration() = %d, want 10", i, task.Duration())
		}
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return s
}
