package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

// Store is an in-memory TransactionStore safe for concurrent use.
// Data is lost on restart; it backs the service until a persistent
// implementation of store.TransactionStore replaces it.
type Store struct {
	mu     sync.RWMutex
	txns   map[int]model.Transaction
	nextID int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{txns: make(map[int]model.Transaction)}
}

// Insert stores a transaction under a single lock, so ID allocation and
// the write are atomic. Records carrying an explicit ID keep it; the
// allocation watermark moves past it so later assignments never collide.
func (s *Store) Insert(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if txn.ID == 0 {
		s.nextID++
		txn.ID = s.nextID
	} else if txn.ID > s.nextID {
		s.nextID = txn.ID
	}
	s.txns[txn.ID] = txn
	return txn, nil
}

// FindByID returns the transaction with the given ID.
func (s *Store) FindByID(ctx context.Context, id int) (model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.txns[id]
	if !ok {
		return model.Transaction{}, store.ErrNotFound
	}
	return txn, nil
}

// FindByUserAndRange returns the user's transactions within the inclusive
// [from, to] range, ordered by ID.
func (s *Store) FindByUserAndRange(ctx context.Context, userID int, from, to *time.Time) ([]model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Transaction
	for _, txn := range s.txns {
		if txn.UserID != userID {
			continue
		}
		if from != nil && txn.DateTime.Before(*from) {
			continue
		}
		if to != nil && txn.DateTime.After(*to) {
			continue
		}
		result = append(result, txn)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Count returns the number of stored transactions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.txns), nil
}

// Clear removes all transactions and resets ID allocation.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txns = make(map[int]model.Transaction)
	s.nextID = 0
	return nil
}
