package store

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// ErrNotFound is returned by point lookups for unknown transaction IDs.
var ErrNotFound = errors.New("transaction not found")

// TransactionStore defines how transactions are persisted and queried.
// Implementations must be safe for concurrent use: assigned IDs never
// collide and readers never observe a partially written record.
type TransactionStore interface {
	// Insert persists a transaction, assigning the next free ID when the
	// record carries none, and returns the stored record.
	Insert(ctx context.Context, txn model.Transaction) (model.Transaction, error)

	// FindByID returns the transaction with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id int) (model.Transaction, error)

	// FindByUserAndRange returns the user's transactions whose timestamp
	// falls within the inclusive [from, to] range. A nil bound is open.
	FindByUserAndRange(ctx context.Context, userID int, from, to *time.Time) ([]model.Transaction, error)

	// Count returns the number of stored transactions.
	Count(ctx context.Context) (int, error)

	// Clear removes every transaction and resets ID allocation. Used for
	// test isolation only.
	Clear(ctx context.Context) error
}
