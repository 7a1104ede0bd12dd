package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/logging"
	"github.com/Simplici0/tokenwatt/internal/metrics"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

// Operation labels used for metrics and logs.
const (
	opCostFromUnits             = "cost_from_units"
	opUnitsFromCost             = "units_from_cost"
	opUnitsFromCostWithOffset   = "units_from_cost_with_offset"
	opUnitsFromCombinedPayments = "units_from_combined_payments"
)

const (
	msgInvalidNumber  = "Invalid input: Please enter a valid number"
	msgInvalidNumbers = "Invalid input: Please enter valid numbers"
	msgNegative       = "Invalid input: Values cannot be negative"
	msgUnknownTariff  = "Invalid input: Unknown tariff"
	msgFailed         = "Calculation failed"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "layout.html", s.homeData(r.URL.Query()))
}

func (s *Server) handleCostPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := s.homeData(q)
	data.CostResult = s.costFragment(r.Context(), q)
	s.render(w, "layout.html", data)
}

func (s *Server) handleUnitsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := s.homeData(q)
	data.UnitsResult = s.unitsFragment(r.Context(), q)
	s.render(w, "layout.html", data)
}

// HTMX only swaps 2xx responses, so the live fragments carry their errors in
// the body with a 200 status.
func (s *Server) handleCostLive(w http.ResponseWriter, r *http.Request) {
	s.render(w, "result", s.costFragment(r.Context(), r.URL.Query()))
}

func (s *Server) handleUnitsLive(w http.ResponseWriter, r *http.Request) {
	s.render(w, "result", s.unitsFragment(r.Context(), r.URL.Query()))
}

func (s *Server) homeData(q url.Values) homeViewData {
	options, selected := s.scheduleOptions(scheduleParam(q))
	return homeViewData{
		Schedules:     options,
		ScheduleID:    selected,
		Units:         q.Get("units"),
		Amount:        q.Get("amount"),
		InitialAmount: q.Get("initial_amount"),
	}
}

func (s *Server) costFragment(ctx context.Context, q url.Values) fragment {
	logger := logging.FromContext(ctx)

	units, ok, err := parseOptionalDecimal(q, "units")
	if err != nil {
		logger.Warn("invalid cost input", zap.Error(err))
		return fragment{Error: msgInvalidNumber}
	}
	if !ok || units.IsZero() {
		return fragment{}
	}

	scheduleID := scheduleParam(q)
	total, b, err := s.engine.CostFromUnits(scheduleID, units)
	s.observe(opCostFromUnits, scheduleID, err)
	if err != nil {
		logger.Warn("cost from units rejected", zap.String("units", units.String()), zap.Error(err))
		return fragment{Error: errorMessage(err)}
	}

	logger.Debug("cost from units",
		zap.String("schedule", b.ScheduleID),
		zap.String("units", units.String()),
		zap.String("total", total.String()),
	)
	return fragment{Result: &resultView{
		Title:     "Cost Calculation Result",
		Summary:   fmt.Sprintf("%s kWh = %s %s", units.String(), money(total), b.Currency),
		Breakdown: b,
	}}
}

func (s *Server) unitsFragment(ctx context.Context, q url.Values) fragment {
	logger := logging.FromContext(ctx)

	amount, hasAmount, amountErr := parseOptionalDecimal(q, "amount")
	initial, hasInitial, initialErr := parseOptionalDecimal(q, "initial_amount")
	if err := errors.Join(amountErr, initialErr); err != nil {
		logger.Warn("invalid units input", zap.Error(err))
		return fragment{Error: msgInvalidNumbers}
	}
	if !hasAmount && !hasInitial {
		return fragment{}
	}
	if amount.IsZero() && initial.IsZero() {
		return fragment{}
	}

	scheduleID := scheduleParam(q)
	if initial.IsZero() {
		units, b, err := s.engine.UnitsFromCost(scheduleID, amount)
		s.observe(opUnitsFromCost, scheduleID, err)
		if err != nil {
			logger.Warn("units from cost rejected", zap.String("amount", amount.String()), zap.Error(err))
			return fragment{Error: errorMessage(err)}
		}
		logger.Debug("units from cost",
			zap.String("schedule", b.ScheduleID),
			zap.String("amount", amount.String()),
			zap.String("units", units.String()),
		)
		return fragment{Result: &resultView{
			Title:     "Units Calculation Result",
			Summary:   fmt.Sprintf("%s kWh = %s %s", money(units), money(amount), b.Currency),
			Breakdown: b,
		}}
	}

	units, b, err := s.engine.UnitsFromCombinedPayments(scheduleID, amount, initial)
	s.observe(opUnitsFromCombinedPayments, scheduleID, err)
	if err != nil {
		logger.Warn("combined payments rejected",
			zap.String("amount", amount.String()),
			zap.String("initial_amount", initial.String()),
			zap.Error(err),
		)
		return fragment{Error: errorMessage(err)}
	}
	logger.Debug("units from combined payments",
		zap.String("schedule", b.ScheduleID),
		zap.String("amount", amount.String()),
		zap.String("initial_amount", initial.String()),
		zap.String("units", units.String()),
		zap.String("sequential_units", b.Payments.SequentialUnits.String()),
	)

	view := &resultView{Title: "Units Calculation Result", Breakdown: b}
	if amount.IsPositive() {
		view.Summary = fmt.Sprintf("%s kWh (Total: %s %s = %s + %s)",
			money(units), money(b.Total), b.Currency, money(initial), money(amount))
	} else {
		view.Title = "Units from Initial Payment"
		view.Summary = fmt.Sprintf("%s kWh from initial payment of %s %s", money(units), money(initial), b.Currency)
	}
	return fragment{Result: view}
}

// observe counts one engine call. Unknown schedule IDs share a single label
// value to bound cardinality.
func (s *Server) observe(operation, scheduleID string, err error) {
	if scheduleID == "" {
		scheduleID = s.engine.Registry().DefaultID()
	}

	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, tariff.ErrUnknownSchedule):
		outcome = metrics.OutcomeRejected
		scheduleID = "unknown"
	case errors.Is(err, tariff.ErrInvalidArgument):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveCalculation(operation, scheduleID, outcome)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, tariff.ErrUnknownSchedule):
		return msgUnknownTariff
	case errors.Is(err, tariff.ErrInvalidArgument):
		return msgNegative
	default:
		return msgFailed
	}
}
