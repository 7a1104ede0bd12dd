package tariff

import "github.com/shopspring/decimal"

// Engine resolves a schedule per call and runs the conversions against it.
// It holds no per-request state.
type Engine struct {
	registry *Registry
	vatRate  decimal.Decimal
}

// NewEngine returns an engine over registry applying vatRate.
func NewEngine(registry *Registry, vatRate decimal.Decimal) *Engine {
	return &Engine{registry: registry, vatRate: vatRate}
}

// Registry returns the schedules the engine resolves against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// VATRate returns the tax rate applied to every conversion.
func (e *Engine) VATRate() decimal.Decimal {
	return e.vatRate
}

// CostFromUnits prices units under the schedule named scheduleID.
func (e *Engine) CostFromUnits(scheduleID string, units decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	s, err := e.registry.Lookup(scheduleID)
	if err != nil {
		return decimal.Zero, Breakdown{}, err
	}
	return CostFromUnits(units, s, e.vatRate)
}

// UnitsFromCost returns the units amount buys under the schedule named scheduleID.
func (e *Engine) UnitsFromCost(scheduleID string, amount decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	s, err := e.registry.Lookup(scheduleID)
	if err != nil {
		return decimal.Zero, Breakdown{}, err
	}
	return UnitsFromCost(amount, s, e.vatRate)
}

// UnitsFromCostWithOffset returns the units amount buys after existingUnits.
func (e *Engine) UnitsFromCostWithOffset(scheduleID string, amount, existingUnits decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	s, err := e.registry.Lookup(scheduleID)
	if err != nil {
		return decimal.Zero, Breakdown{}, err
	}
	units, b := UnitsFromCostWithOffset(amount, existingUnits, s, e.vatRate)
	return units, b, nil
}

// UnitsFromCombinedPayments evaluates an initial and a new payment together.
func (e *Engine) UnitsFromCombinedPayments(scheduleID string, newAmount, initialAmount decimal.Decimal) (decimal.Decimal, Breakdown, error) {
	s, err := e.registry.Lookup(scheduleID)
	if err != nil {
		return decimal.Zero, Breakdown{}, err
	}
	return UnitsFromCombinedPayments(newAmount, initialAmount, s, e.vatRate)
}
