// Package tariff converts between consumed units and amounts paid under a
// progressive three-tier electricity tariff with VAT on top.
package tariff

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidArgument is returned when a unit quantity or amount is negative.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidSchedule is returned when a schedule is not a progressive tariff.
	ErrInvalidSchedule = errors.New("invalid tariff schedule")
	// ErrUnknownSchedule is returned when a schedule id is not registered.
	ErrUnknownSchedule = errors.New("unknown tariff schedule")
)

var one = decimal.NewFromInt(1)

// CostFromUnits returns the total amount due for units, VAT included.
func CostFromUnits(units decimal.Decimal, s Schedule, vatRate decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	if units.IsNegative() {
		return decimal.Zero, Breakdown{}, fmt.Errorf("%w: units cannot be negative", ErrInvalidArgument)
	}

	t1 := decimal.Min(units, s.Tier1Limit)
	t2 := decimal.Max(decimal.Zero, decimal.Min(units, s.Tier2Limit).Sub(s.Tier1Limit))
	t3 := decimal.Max(decimal.Zero, units.Sub(s.Tier2Limit))

	b := price(s, vatRate, t1, t2, t3)
	return b.Total, b, nil
}

// UnitsFromCost returns how many units amount buys from an empty billing
// period. It inverts CostFromUnits tier by tier.
func UnitsFromCost(amount decimal.Decimal, s Schedule, vatRate decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	if amount.IsNegative() {
		return decimal.Zero, Breakdown{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidArgument)
	}
	if amount.IsZero() {
		return decimal.Zero, zeroBreakdown(s, vatRate), nil
	}

	subtotal := amount.Div(one.Add(vatRate))
	tier1CostLimit := s.Tier1CostLimit()
	tier2CostLimit := s.Tier2CostLimit()

	t1, t2, t3 := decimal.Zero, decimal.Zero, decimal.Zero
	switch {
	case subtotal.LessThanOrEqual(tier1CostLimit):
		t1 = subtotal.Div(s.Tier1Rate)
	case subtotal.LessThanOrEqual(tier2CostLimit):
		t1 = s.Tier1Limit
		t2 = subtotal.Sub(tier1CostLimit).Div(s.Tier2Rate)
	default:
		t1 = s.Tier1Limit
		t2 = s.Tier2Limit.Sub(s.Tier1Limit)
		t3 = subtotal.Sub(tier2CostLimit).Div(s.Tier3Rate)
	}

	b := price(s, vatRate, t1, t2, t3)
	b.Total = round(amount)
	return b.TotalUnits, b, nil
}

// UnitsFromCostWithOffset returns how many units amount buys when
// existingUnits were already consumed in the billing period, so the cheaper
// tiers only have their remaining capacity left.
//
// A zero or negative amount yields an empty breakdown rather than an error.
func UnitsFromCostWithOffset(amount, existingUnits decimal.Decimal, s Schedule, vatRate decimal.Decimal) (decimal.Decimal, Breakdown) {
	if !amount.IsPositive() {
		return decimal.Zero, zeroBreakdown(s, vatRate)
	}
	existingUnits = decimal.Max(decimal.Zero, existingUnits)

	remainingT1 := decimal.Max(decimal.Zero, s.Tier1Limit.Sub(existingUnits))
	remainingT2 := decimal.Max(decimal.Zero, s.Tier2Limit.Sub(decimal.Max(existingUnits, s.Tier1Limit)))

	budget := amount.Div(one.Add(vatRate))
	t1, t2, t3 := decimal.Zero, decimal.Zero, decimal.Zero

	if remainingT1.IsPositive() && budget.IsPositive() {
		t1 = decimal.Min(remainingT1, budget.Div(s.Tier1Rate))
		budget = budget.Sub(t1.Mul(s.Tier1Rate))
	}
	if remainingT2.IsPositive() && budget.IsPositive() {
		t2 = decimal.Min(remainingT2, budget.Div(s.Tier2Rate))
		budget = budget.Sub(t2.Mul(s.Tier2Rate))
	}
	if budget.IsPositive() {
		t3 = budget.Div(s.Tier3Rate)
	}

	b := price(s, vatRate, t1, t2, t3)
	b.Total = round(amount)
	return b.TotalUnits, b
}

// UnitsFromCombinedPayments evaluates an initial payment followed by a new one
// in the same billing period. The returned units and the top-level tiers come
// from the two amounts priced as a single payment; the sequential view is kept
// in Breakdown.Payments.
func UnitsFromCombinedPayments(newAmount, initialAmount decimal.Decimal, s Schedule, vatRate decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	if newAmount.IsNegative() {
		return decimal.Zero, Breakdown{}, fmt.Errorf("%w: amount cannot be negative", ErrInvalidArgument)
	}
	if initialAmount.IsNegative() {
		return decimal.Zero, Breakdown{}, fmt.Errorf("%w: initial amount cannot be negative", ErrInvalidArgument)
	}

	split := &PaymentSplit{
		InitialAmount:   round(initialAmount),
		NewAmount:       round(newAmount),
		HasBothPayments: initialAmount.IsPositive() && newAmount.IsPositive(),
	}

	initialUnits := decimal.Zero
	if initialAmount.IsPositive() {
		units, initial, err := UnitsFromCost(initialAmount, s, vatRate)
		if err != nil {
			return decimal.Zero, Breakdown{}, fmt.Errorf("price initial payment: %w", err)
		}
		initialUnits = units
		split.Initial = &initial
	}

	newUnits := decimal.Zero
	if newAmount.IsPositive() {
		units, next := UnitsFromCostWithOffset(newAmount, initialUnits, s, vatRate)
		newUnits = units
		split.New = &next
	}
	split.SequentialUnits = round(initialUnits.Add(newUnits))

	units, combined, err := UnitsFromCost(newAmount.Add(initialAmount), s, vatRate)
	if err != nil {
		return decimal.Zero, Breakdown{}, fmt.Errorf("price combined payment: %w", err)
	}
	combined.Payments = split
	return units, combined, nil
}
