package seed

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/tokenwatt/internal/db"
	"github.com/Simplici0/tokenwatt/internal/migrations"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

func newSeedTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "seed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func TestRunIsIdempotent(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		stats, err := Run(ctx, database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 2 {
				t.Fatalf("expected 2 inserts in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 || stats.Updates != 0 {
			t.Fatalf("expected no writes in iteration %d, got %+v", i, stats)
		}
	}

	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules`, nil, 2)
	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules WHERE id = ?`, "new", 1)
	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules WHERE id = ? AND tier2_limit = ?`, []any{"old", "35"}, 1)
}

func TestRunStoresAndUpdatesPresets(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	commercial := tariff.Schedule{
		ID:         "commercial",
		Name:       "Commercial",
		Currency:   tariff.DefaultCurrency,
		Tier1Rate:  decimal.NewFromInt(212),
		Tier2Rate:  decimal.NewFromInt(249),
		Tier3Rate:  decimal.NewFromInt(255),
		Tier1Limit: decimal.NewFromInt(100),
		Tier2Limit: decimal.NewFromInt(200),
	}

	stats, err := Run(ctx, database, commercial)
	if err != nil {
		t.Fatalf("run seed: %v", err)
	}
	if stats.Inserts != 3 {
		t.Fatalf("expected 3 inserts, got %+v", stats)
	}

	commercial.Tier3Rate = decimal.NewFromInt(300)
	stats, err = Run(ctx, database, commercial)
	if err != nil {
		t.Fatalf("rerun seed: %v", err)
	}
	if stats.Inserts != 0 || stats.Updates != 1 {
		t.Fatalf("expected one update, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules WHERE id = ? AND tier3_rate = ?`, []any{"commercial", "300"}, 1)
}

func TestRunUpdatesCurrencyOnlyChange(t *testing.T) {
	database := newSeedTestDB(t)
	ctx := context.Background()

	if _, err := Run(ctx, database); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	usd := tariff.NewSchedule()
	usd.Currency = "USD"
	stats, err := Run(ctx, database, usd)
	if err != nil {
		t.Fatalf("rerun seed: %v", err)
	}
	if stats.Inserts != 0 || stats.Updates != 1 {
		t.Fatalf("expected one update, got %+v", stats)
	}
	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules WHERE id = ? AND currency = ?`, []any{"new", "USD"}, 1)
}

func TestRunRejectsInvalidPreset(t *testing.T) {
	database := newSeedTestDB(t)

	broken := tariff.NewSchedule()
	broken.ID = "broken"
	broken.Tier2Rate = broken.Tier1Rate

	if _, err := Run(context.Background(), database, broken); err == nil {
		t.Fatalf("expected validation error")
	}
	assertCount(t, database, `SELECT COUNT(*) FROM tariff_schedules`, nil, 0)
}

func assertCount(t *testing.T, database *sql.DB, query string, args any, expected int) {
	t.Helper()

	var count int
	var err error
	switch v := args.(type) {
	case nil:
		err = database.QueryRow(query).Scan(&count)
	case []any:
		err = database.QueryRow(query, v...).Scan(&count)
	default:
		err = database.QueryRow(query, v).Scan(&count)
	}
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != expected {
		t.Fatalf("expected count %d, got %d", expected, count)
	}
}
