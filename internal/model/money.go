package model

import "github.com/shopspring/decimal"

// Money wraps a decimal amount so it renders as a JSON number with
// exactly two fraction digits, e.g. 150.50 rather than 150.5.
type Money struct {
	decimal.Decimal
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}
