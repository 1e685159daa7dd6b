package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimals every amount is displayed with.
const MoneyScale = 2

// Money is a euro amount kept at full precision and rendered with two decimals.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MustParseMoney parses a literal amount and panics on malformed input; meant for static data.
func MustParseMoney(value string) Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(fmt.Sprintf("invalid money literal %q: %v", value, err))
	}
	return Money{Decimal: d}
}

// Fixed rounds half away from zero to two decimals, once, at display time.
func (m Money) Fixed() string {
	return m.Decimal.StringFixed(MoneyScale)
}

// MarshalJSON renders the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fixed())
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.Decimal.UnmarshalJSON(data)
}
