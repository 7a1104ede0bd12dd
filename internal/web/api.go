package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Simplici0/tokenwatt/internal/logging"
	"github.com/Simplici0/tokenwatt/internal/tariff"
)

type costResponse struct {
	Units     decimal.Decimal  `json:"units"`
	Total     decimal.Decimal  `json:"total"`
	Breakdown tariff.Breakdown `json:"breakdown"`
}

type unitsResponse struct {
	Amount    decimal.Decimal  `json:"amount"`
	Units     decimal.Decimal  `json:"units"`
	Operation string           `json:"operation"`
	Breakdown tariff.Breakdown `json:"breakdown"`
}

type schedulesResponse struct {
	Default   string            `json:"default"`
	VATRate   decimal.Decimal   `json:"vat_rate"`
	Schedules []tariff.Schedule `json:"schedules"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleAPICost(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	units, err := parseRequiredDecimal(q, "units")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	scheduleID := scheduleParam(q)
	total, b, err := s.engine.CostFromUnits(scheduleID, units)
	s.observe(opCostFromUnits, scheduleID, err)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, costResponse{Units: units, Total: total, Breakdown: b})
}

// handleAPIUnits answers from an empty period by default, after
// existing_units when given, or after an initial payment when
// initial_amount is given.
func (s *Server) handleAPIUnits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := parseRequiredDecimal(q, "amount")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	initial, hasInitial, err := parseOptionalDecimal(q, "initial_amount")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	existing, hasExisting, err := parseOptionalDecimal(q, "existing_units")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if hasInitial && hasExisting {
		writeJSONError(w, http.StatusBadRequest, "initial_amount and existing_units are mutually exclusive")
		return
	}

	scheduleID := scheduleParam(q)
	var (
		units decimal.Decimal
		b     tariff.Breakdown
		op    string
	)
	switch {
	case hasExisting:
		op = opUnitsFromCostWithOffset
		units, b, err = s.engine.UnitsFromCostWithOffset(scheduleID, amount, existing)
	case hasInitial:
		op = opUnitsFromCombinedPayments
		units, b, err = s.engine.UnitsFromCombinedPayments(scheduleID, amount, initial)
	default:
		op = opUnitsFromCost
		units, b, err = s.engine.UnitsFromCost(scheduleID, amount)
	}
	s.observe(op, scheduleID, err)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, unitsResponse{Amount: amount, Units: units, Operation: op, Breakdown: b})
}

func (s *Server) handleAPISchedules(w http.ResponseWriter, _ *http.Request) {
	registry := s.engine.Registry()
	writeJSON(w, http.StatusOK, schedulesResponse{
		Default:   registry.DefaultID(),
		VATRate:   s.engine.VATRate(),
		Schedules: registry.Schedules(),
	})
}

func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tariff.ErrInvalidArgument), errors.Is(err, tariff.ErrUnknownSchedule):
		logging.FromContext(r.Context()).Warn("calculation rejected", zap.Error(err))
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).Error("calculation failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "calculation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
