package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Stats accumulates running statistics over one migration run. A Stats
// value belongs to a single run and is discarded once the report is built.
type Stats struct {
	TotalRecords   int
	SuccessRecords int
	ErrorRecords   int
	UsersAffected  map[int]struct{}
	TotalAmount    decimal.Decimal
	LargestAmount  decimal.Decimal
	SmallestAmount decimal.Decimal
	FirstDate      time.Time
	LastDate       time.Time
	Errors         []string
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{UsersAffected: make(map[int]struct{})}
}

// RecordSuccess folds one persisted transaction into the running totals.
// The first success seeds both extrema and both date bounds.
func (s *Stats) RecordSuccess(txn model.Transaction) {
	first := s.SuccessRecords == 0
	s.SuccessRecords++
	s.UsersAffected[txn.UserID] = struct{}{}
	s.TotalAmount = s.TotalAmount.Add(txn.Amount)

	if first || txn.Amount.GreaterThan(s.LargestAmount) {
		s.LargestAmount = txn.Amount
	}
	if first || txn.Amount.LessThan(s.SmallestAmount) {
		s.SmallestAmount = txn.Amount
	}
	if first || txn.DateTime.Before(s.FirstDate) {
		s.FirstDate = txn.DateTime
	}
	if first || txn.DateTime.After(s.LastDate) {
		s.LastDate = txn.DateTime
	}
}

// RecordError notes a row-scoped failure. Row errors are data, not
// control flow; processing continues with the next row.
func (s *Stats) RecordError(line int, err error) {
	s.ErrorRecords++
	s.Errors = append(s.Errors, fmt.Sprintf("Line %d: %v", line, err))
}

// Aggregator persists parsed rows and folds them into Stats. Each row is
// attempted exactly once; a failed insert is recorded against the row's
// line like a parse failure would be.
type Aggregator struct {
	store store.TransactionStore
	stats *Stats
}

// NewAggregator creates an Aggregator writing to st.
func NewAggregator(st store.TransactionStore) *Aggregator {
	return &Aggregator{store: st, stats: NewStats()}
}

// Success persists a parsed transaction and updates the statistics.
func (a *Aggregator) Success(ctx context.Context, txn model.Transaction, line int) {
	saved, err := a.store.Insert(ctx, txn)
	if err != nil {
		a.stats.RecordError(line, err)
		return
	}
	a.stats.RecordSuccess(saved)
}

// Failure records a row-scoped parse error.
func (a *Aggregator) Failure(rowErr *RowError) {
	a.stats.RecordError(rowErr.Line, rowErr)
}

// Stats returns the accumulated statistics.
func (a *Aggregator) Stats() *Stats {
	return a.stats
}
