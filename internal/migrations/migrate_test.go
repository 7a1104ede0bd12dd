package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Simplici0/tokenwatt/internal/db"
)

func TestUpCreatesScheduleTable(t *testing.T) {
	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "migrate.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	// a second run has nothing to apply
	if err := Up(database); err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}

	version, err := Version(database)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if version != 1 {
		t.Fatalf("version=%d, want 1", version)
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM tariff_schedules`).Scan(&count); err != nil {
		t.Fatalf("query tariff_schedules: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}
