package web

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/tokenwatt/internal/tariff"
)

// parseOptionalDecimal reads field from q. An absent or blank value is
// reported with ok=false and no error.
func parseOptionalDecimal(q url.Values, field string) (value decimal.Decimal, ok bool, err error) {
	raw := strings.TrimSpace(q.Get(field))
	if raw == "" {
		return decimal.Zero, false, nil
	}
	value, err = tariff.ParseQuantity(field, raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return value, true, nil
}

func parseRequiredDecimal(q url.Values, field string) (decimal.Decimal, error) {
	value, ok, err := parseOptionalDecimal(q, field)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%s is required", field)
	}
	return value, nil
}

func scheduleParam(q url.Values) string {
	return strings.ToLower(strings.TrimSpace(q.Get("tariff")))
}
