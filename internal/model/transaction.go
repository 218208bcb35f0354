package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one financial movement belonging to a user.
// An ID of zero means the store has not assigned an identifier yet.
type Transaction struct {
	ID       int
	UserID   int
	Amount   decimal.Decimal // negative = debit, positive = credit
	DateTime time.Time       // second precision
}
