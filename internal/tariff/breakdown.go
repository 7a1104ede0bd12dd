package tariff

import "github.com/shopspring/decimal"

// TierCount is the number of consumption bands in every schedule.
const TierCount = 3

const displayPlaces = 2

// TierLine is the consumption attributed to one tier.
type TierLine struct {
	Tier  int             `json:"tier"`
	Label string          `json:"label"`
	Rate  decimal.Decimal `json:"rate"`
	Units decimal.Decimal `json:"units"`
	Cost  decimal.Decimal `json:"cost"`
}

// Breakdown is the full result of one conversion. Every money and unit field
// is already rounded to display precision.
type Breakdown struct {
	ScheduleID string              `json:"schedule_id"`
	Currency   string              `json:"currency"`
	VATRate    decimal.Decimal     `json:"vat_rate"`
	Tiers      [TierCount]TierLine `json:"tiers"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	VATAmount  decimal.Decimal     `json:"vat_amount"`
	Total      decimal.Decimal     `json:"total"`
	TotalUnits decimal.Decimal     `json:"total_units"`
	Payments   *PaymentSplit       `json:"payments,omitempty"`
}

// PaymentSplit is attached to a combined breakdown when units were bought in
// two payments during the same billing period.
type PaymentSplit struct {
	InitialAmount   decimal.Decimal `json:"initial_amount"`
	NewAmount       decimal.Decimal `json:"new_amount"`
	Initial         *Breakdown      `json:"initial,omitempty"`
	New             *Breakdown      `json:"new,omitempty"`
	SequentialUnits decimal.Decimal `json:"sequential_units"`
	HasBothPayments bool            `json:"has_both_payments"`
}

// Tier returns the line of tier n (1-based).
func (b Breakdown) Tier(n int) TierLine {
	return b.Tiers[n-1]
}

// ActiveTiers returns the tiers with consumption, in order.
func (b Breakdown) ActiveTiers() []TierLine {
	out := make([]TierLine, 0, TierCount)
	for _, line := range b.Tiers {
		if line.Units.IsPositive() {
			out = append(out, line)
		}
	}
	return out
}

// VATPercent returns the VAT rate as a percentage.
func (b Breakdown) VATPercent() decimal.Decimal {
	return b.VATRate.Mul(decimal.NewFromInt(100))
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(displayPlaces)
}

// price builds a breakdown from raw per-tier units. Each tier cost, the
// subtotal, the VAT amount and the total are rounded independently from the
// unrounded intermediate values.
func price(s Schedule, vatRate, t1, t2, t3 decimal.Decimal) Breakdown {
	b := Breakdown{
		ScheduleID: s.ID,
		Currency:   s.Currency,
		VATRate:    vatRate,
	}

	subtotal := decimal.Zero
	for i, units := range [TierCount]decimal.Decimal{t1, t2, t3} {
		n := i + 1
		cost := units.Mul(s.Rate(n))
		subtotal = subtotal.Add(cost)
		b.Tiers[i] = TierLine{
			Tier:  n,
			Label: s.TierLabel(n),
			Rate:  s.Rate(n),
			Units: round(units),
			Cost:  round(cost),
		}
	}
	vat := subtotal.Mul(vatRate)

	b.Subtotal = round(subtotal)
	b.VATAmount = round(vat)
	b.Total = round(subtotal.Add(vat))
	b.TotalUnits = round(t1.Add(t2).Add(t3))
	return b
}

func zeroBreakdown(s Schedule, vatRate decimal.Decimal) Breakdown {
	return price(s, vatRate, decimal.Zero, decimal.Zero, decimal.Zero)
}
