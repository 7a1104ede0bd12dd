package tariff

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Schedule IDs of the canonical rate tables.
const (
	ScheduleOld = "old"
	ScheduleNew = "new"
)

// DefaultCurrency is the currency every canonical schedule is priced in.
const DefaultCurrency = "RWF"

// DefaultVATRate is the value-added tax applied on top of tiered subtotals.
var DefaultVATRate = decimal.RequireFromString("0.18")

// Schedule is an immutable tariff table: three per-unit rates and the two
// cumulative unit thresholds that separate them.
type Schedule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Currency   string          `json:"currency"`
	Tier1Rate  decimal.Decimal `json:"tier1_rate"`
	Tier2Rate  decimal.Decimal `json:"tier2_rate"`
	Tier3Rate  decimal.Decimal `json:"tier3_rate"`
	Tier1Limit decimal.Decimal `json:"tier1_limit"`
	Tier2Limit decimal.Decimal `json:"tier2_limit"`
}

// OldSchedule returns the rate table in force before the October 2025 revision.
func OldSchedule() Schedule {
	return Schedule{
		ID:         ScheduleOld,
		Name:       "Residential (before Oct 2025)",
		Currency:   DefaultCurrency,
		Tier1Rate:  decimal.NewFromInt(89),
		Tier2Rate:  decimal.NewFromInt(212),
		Tier3Rate:  decimal.NewFromInt(249),
		Tier1Limit: decimal.NewFromInt(15),
		Tier2Limit: decimal.NewFromInt(35),
	}
}

// NewSchedule returns the revised residential rate table.
func NewSchedule() Schedule {
	return Schedule{
		ID:         ScheduleNew,
		Name:       "Residential (from Oct 2025)",
		Currency:   DefaultCurrency,
		Tier1Rate:  decimal.NewFromInt(89),
		Tier2Rate:  decimal.NewFromInt(310),
		Tier3Rate:  decimal.NewFromInt(369),
		Tier1Limit: decimal.NewFromInt(20),
		Tier2Limit: decimal.NewFromInt(50),
	}
}

// Validate reports whether the schedule describes a progressive tariff.
func (s Schedule) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: schedule id is required", ErrInvalidSchedule)
	}
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"tier1_rate", s.Tier1Rate},
		{"tier2_rate", s.Tier2Rate},
		{"tier3_rate", s.Tier3Rate},
		{"tier1_limit", s.Tier1Limit},
		{"tier2_limit", s.Tier2Limit},
	}
	for _, f := range fields {
		if !f.value.IsPositive() {
			return fmt.Errorf("%w: %s %s must be greater than 0", ErrInvalidSchedule, s.ID, f.name)
		}
	}
	if !s.Tier2Limit.GreaterThan(s.Tier1Limit) {
		return fmt.Errorf("%w: %s tier2_limit must exceed tier1_limit", ErrInvalidSchedule, s.ID)
	}
	if !s.Tier2Rate.GreaterThan(s.Tier1Rate) || !s.Tier3Rate.GreaterThan(s.Tier2Rate) {
		return fmt.Errorf("%w: %s rates must increase by tier", ErrInvalidSchedule, s.ID)
	}
	return nil
}

// Rate returns the per-unit rate of tier n (1-based).
func (s Schedule) Rate(n int) decimal.Decimal {
	switch n {
	case 1:
		return s.Tier1Rate
	case 2:
		return s.Tier2Rate
	default:
		return s.Tier3Rate
	}
}

// Tier1CostLimit is the pre-tax cost of a fully consumed first tier.
func (s Schedule) Tier1CostLimit() decimal.Decimal {
	return s.Tier1Limit.Mul(s.Tier1Rate)
}

// Tier2CostLimit is the pre-tax cost of fully consumed first and second tiers.
func (s Schedule) Tier2CostLimit() decimal.Decimal {
	return s.Tier1CostLimit().Add(s.Tier2Limit.Sub(s.Tier1Limit).Mul(s.Tier2Rate))
}

// TierLabel renders the unit band of tier n, e.g. "20-50 kWh".
func (s Schedule) TierLabel(n int) string {
	switch n {
	case 1:
		return fmt.Sprintf("0-%s kWh", s.Tier1Limit.String())
	case 2:
		return fmt.Sprintf("%s-%s kWh", s.Tier1Limit.String(), s.Tier2Limit.String())
	default:
		return fmt.Sprintf("%s+ kWh", s.Tier2Limit.String())
	}
}
