package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A single connection keeps the in-memory database and its pragmas
	// alive across statements.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables InitDB creates.
var expectedTables = []string{
	"account",
	"audit_event",
	"category",
	"course",
	"enrollment",
	"internship",
	"internship_enrollment",
	"internship_material",
	"internship_project",
	"internship_quiz",
	"lesson",
	"lesson_completion",
	"notification",
	"outbox",
	"quiz",
	"quiz_result",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("table count = %d, want %d: %v", len(got), len(expectedTables), got)
	}
	for i, name := range expectedTables {
		if got[i] != name {
			t.Errorf("table[%d] = %q, want %q", i, got[i], name)
		}
	}
}

// TestInitDB_Idempotent verifies InitDB can run twice without error.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("table count = %d, want %d: %v", len(got), len(expectedTables), got)
	}
}

// TestInitDB_ForeignKeysEnforced verifies the foreign_keys pragma is active.
func TestInitDB_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(
		"INSERT INTO lesson (id, course_id, title, content, lesson_order, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		"l1", "missing-course", "Intro", "", 0, "2026-01-01T00:00:00Z")
	if err == nil {
		t.Fatal("expected foreign key violation inserting lesson for missing course")
	}
}
