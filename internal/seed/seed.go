package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run stores the canonical schedules followed by extra presets, in an
// idempotent way. A preset whose ID matches an existing row replaces its
// rates and limits.
func Run(ctx context.Context, db *sql.DB, extra ...tariff.Schedule) (Stats, error) {
	schedules := append([]tariff.Schedule{tariff.OldSchedule(), tariff.NewSchedule()}, extra...)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for position, sch := range schedules {
		if err := sch.Validate(); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
		if err := ensureSchedule(ctx, tx, sch, position, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSchedule(ctx context.Context, tx *sql.Tx, sch tariff.Schedule, position int, stats *Stats) error {
	var current tariff.Schedule
	err := tx.QueryRowContext(ctx, `
		SELECT name, currency, tier1_rate, tier2_rate, tier3_rate, tier1_limit, tier2_limit
		FROM tariff_schedules
		WHERE id = ?
	`, sch.ID).Scan(
		&current.Name,
		&current.Currency,
		&current.Tier1Rate,
		&current.Tier2Rate,
		&current.Tier3Rate,
		&current.Tier1Limit,
		&current.Tier2Limit,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tariff_schedules (
				id,
				name,
				currency,
				tier1_rate,
				tier2_rate,
				tier3_rate,
				tier1_limit,
				tier2_limit,
				position
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, sch.ID, sch.Name, sch.Currency, sch.Tier1Rate, sch.Tier2Rate, sch.Tier3Rate, sch.Tier1Limit, sch.Tier2Limit, position); err != nil {
			return fmt.Errorf("insert tariff schedule %q: %w", sch.ID, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check tariff schedule %q: %w", sch.ID, err)
	}

	if sameRates(current, sch) && current.Name == sch.Name && current.Currency == sch.Currency {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE tariff_schedules
		SET
			name = ?,
			currency = ?,
			tier1_rate = ?,
			tier2_rate = ?,
			tier3_rate = ?,
			tier1_limit = ?,
			tier2_limit = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, sch.Name, sch.Currency, sch.Tier1Rate, sch.Tier2Rate, sch.Tier3Rate, sch.Tier1Limit, sch.Tier2Limit, sch.ID); err != nil {
		return fmt.Errorf("update tariff schedule %q: %w", sch.ID, err)
	}
	stats.Updates++
	return nil
}

func sameRates(a, b tariff.Schedule) bool {
	return a.Tier1Rate.Equal(b.Tier1Rate) &&
		a.Tier2Rate.Equal(b.Tier2Rate) &&
		a.Tier3Rate.Equal(b.Tier3Rate) &&
		a.Tier1Limit.Equal(b.Tier1Limit) &&
		a.Tier2Limit.Equal(b.Tier2Limit)
}
