package quote

import "github.com/shopspring/decimal"

// VAT estimates the tax on a pre-tax total. Results keep full precision; round at display.
type VAT struct {
	Rate decimal.Decimal
}

// Estimate is total × rate.
func (v VAT) Estimate(total decimal.Decimal) decimal.Decimal {
	return total.Mul(v.Rate)
}

// Gross is the total with the estimated tax added.
func (v VAT) Gross(total decimal.Decimal) decimal.Decimal {
	return total.Add(v.Estimate(total))
}
