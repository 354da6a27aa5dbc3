package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jiaebaek/CurriMap/internal/config"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		QueryTimeout: 5 * time.Second,
	}

	db, err := Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background(), "../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := testDB(t)
	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Test that tables were created by migrations
	tables := []string{
		"users", "sessions", "children", "levels", "courses",
		"themes", "moods", "books", "child_interests", "course_books",
		"daily_missions", "mission_logs", "onboarding_questions",
		"question_options", "onboarding_responses",
	}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		err := db.QueryRowContext(ctx, query, table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestSeedDataLoaded verifies the reference data migrations ran
func TestSeedDataLoaded(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := testDB(t)
	ctx := context.Background()

	counts := map[string]int{
		"levels":               5,
		"courses":              4,
		"onboarding_questions": 8,
	}

	for table, want := range counts {
		var got int
		if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s rows = %d, want %d", table, got, want)
		}
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := testDB(t)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	id, err := tx.ExecReturningID(ctx,
		"INSERT INTO users (email, password_hash, name) VALUES (?, ?, ?)",
		"tx@example.com", "hash", "Tx User")
	if err != nil {
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if id <= 0 {
		t.Errorf("ExecReturningID() = %d, want positive id", id)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE email = ?", "tx@example.com").Scan(&count); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if count != 0 {
		t.Errorf("rolled back insert should not persist, found %d rows", count)
	}
}

// TestMigrationsIdempotent verifies a second run is a no-op
func TestMigrationsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := testDB(t)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, "../../migrations"); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}

	var got int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM levels").Scan(&got); err != nil {
		t.Fatalf("Failed to count levels: %v", err)
	}
	if got != 5 {
		t.Errorf("levels rows after rerun = %d, want 5", got)
	}
}
