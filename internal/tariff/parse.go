package tariff

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxQuantityLen      = 64
	maxQuantityExponent = 32
)

// ParseQuantity parses a user supplied unit quantity or amount. Only plain
// finite numbers are accepted; exponents beyond ±32 are rejected so later
// rounding never has to expand an arbitrarily large coefficient.
func ParseQuantity(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxQuantityLen {
		return decimal.Zero, fmt.Errorf("%w: %s must be numeric, got %q", ErrInvalidArgument, field, truncate(raw))
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero, fmt.Errorf("%w: %s must be numeric, got %q", ErrInvalidArgument, field, raw)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be numeric, got %q", ErrInvalidArgument, field, raw)
	}
	if exp := value.Exponent(); exp > maxQuantityExponent || exp < -maxQuantityExponent {
		return decimal.Zero, fmt.Errorf("%w: %s is out of range", ErrInvalidArgument, field)
	}
	return value, nil
}

func truncate(raw string) string {
	if len(raw) > maxQuantityLen {
		return raw[:maxQuantityLen] + "..."
	}
	return raw
}
