package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveCalculation(t *testing.T) {
	m := New()
	m.ObserveCalculation("cost_from_units", "new", OutcomeOK)
	m.ObserveCalculation("cost_from_units", "new", OutcomeOK)
	m.ObserveCalculation("units_from_cost", "old", OutcomeRejected)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Calculations().WithLabelValues("cost_from_units", "new", OutcomeOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Calculations().WithLabelValues("units_from_cost", "old", OutcomeRejected)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveCalculation("cost_from_units", "new", OutcomeOK)
	m.ObserveRequest("/", http.MethodGet, "200", 0.1)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveRequest("/", http.MethodGet, "200", 0.01)
	m.ObserveCalculation("cost_from_units", "new", OutcomeOK)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "tokenwatt_calculations_total")
	require.Contains(t, rr.Body.String(), "tokenwatt_http_request_duration_seconds")
}
