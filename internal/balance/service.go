package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// ErrUserNotFound is returned when no transactions match the query. A
// known user with zero transactions in range is indistinguishable from an
// unknown user; callers treat both as bad input.
var ErrUserNotFound = errors.New("user not found")

// Service answers balance queries over stored transactions.
type Service struct {
	store store.TransactionStore
}

// NewService creates a balance Service.
func NewService(st store.TransactionStore) *Service {
	return &Service{store: st}
}

// UserBalance computes the balance for a user, optionally bounded by an
// inclusive date range. Callers are responsible for ensuring from <= to.
func (s *Service) UserBalance(ctx context.Context, userID int, from, to *time.Time) (model.BalanceInfo, error) {
	txns, err := s.store.FindByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return model.BalanceInfo{}, fmt.Errorf("querying transactions: %w", err)
	}
	if len(txns) == 0 {
		return model.BalanceInfo{}, ErrUserNotFound
	}
	return Calculate(txns), nil
}

// Calculate sums a transaction set into balance, total debits and total
// credits. Zero amounts contribute to the balance only.
func Calculate(txns []model.Transaction) model.BalanceInfo {
	var info model.BalanceInfo
	for _, txn := range txns {
		info.Balance = info.Balance.Add(txn.Amount)
		switch {
		case txn.Amount.IsNegative():
			info.TotalDebits = info.TotalDebits.Add(txn.Amount)
		case txn.Amount.IsPositive():
			info.TotalCredits = info.TotalCredits.Add(txn.Amount)
		}
	}
	return info
}
