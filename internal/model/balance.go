package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// BalanceInfo summarizes a user's transactions over a query range.
// Debits are the sum of strictly-negative amounts, credits the sum of
// strictly-positive amounts, so balance = debits + credits always holds.
type BalanceInfo struct {
	Balance      decimal.Decimal
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

// MarshalJSON implements json.Marshaler, rendering all three amounts
// with exactly two fraction digits.
func (b BalanceInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Balance      Money `json:"balance"`
		TotalDebits  Money `json:"total_debits"`
		TotalCredits Money `json:"total_credits"`
	}{
		Balance:      Money{b.Balance},
		TotalDebits:  Money{b.TotalDebits},
		TotalCredits: Money{b.TotalCredits},
	})
}
