// Package schedules reads tariff schedules from the database and from preset files.
package schedules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

// Store is the read path of the tariff_schedules table.
type Store struct {
	db *sql.DB
}

// NewStore returns a store backed by db.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectSchedule = `
	SELECT id, name, currency, tier1_rate, tier2_rate, tier3_rate, tier1_limit, tier2_limit
	FROM tariff_schedules
`

// List returns every stored schedule ordered by position.
func (s *Store) List(ctx context.Context) ([]tariff.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, selectSchedule+` ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tariff schedules: %w", err)
	}
	defer rows.Close()

	out := make([]tariff.Schedule, 0)
	for rows.Next() {
		sch, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tariff schedule: %w", err)
		}
		out = append(out, sch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tariff schedules: %w", err)
	}
	return out, nil
}

// Get returns the schedule stored under id.
func (s *Store) Get(ctx context.Context, id string) (tariff.Schedule, error) {
	sch, err := scanSchedule(s.db.QueryRowContext(ctx, selectSchedule+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tariff.Schedule{}, fmt.Errorf("%w: %q", tariff.ErrUnknownSchedule, id)
		}
		return tariff.Schedule{}, fmt.Errorf("query tariff schedule %q: %w", id, err)
	}
	return sch, nil
}

// Registry builds a tariff.Registry from the stored schedules.
func (s *Store) Registry(ctx context.Context, defaultID string) (*tariff.Registry, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return tariff.NewRegistry(defaultID, list...)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row scanner) (tariff.Schedule, error) {
	var sch tariff.Schedule
	err := row.Scan(
		&sch.ID,
		&sch.Name,
		&sch.Currency,
		&sch.Tier1Rate,
		&sch.Tier2Rate,
		&sch.Tier3Rate,
		&sch.Tier1Limit,
		&sch.Tier2Limit,
	)
	return sch, err
}
