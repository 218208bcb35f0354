package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestInsert_AssignsIDs(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	first, err := st.Insert(ctx, model.Transaction{UserID: 1, Amount: dec("10.00"), DateTime: date(2024, 1, 1)})
	require.NoError(t, err)
	second, err := st.Insert(ctx, model.Transaction{UserID: 1, Amount: dec("20.00"), DateTime: date(2024, 1, 2)})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestInsert_KeepsExplicitID(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	explicit, err := st.Insert(ctx, model.Transaction{ID: 10, UserID: 1, Amount: dec("10.00"), DateTime: date(2024, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, 10, explicit.ID)

	// Allocation moves past explicit IDs so it never collides with them.
	assigned, err := st.Insert(ctx, model.Transaction{UserID: 1, Amount: dec("20.00"), DateTime: date(2024, 1, 2)})
	require.NoError(t, err)
	assert.Equal(t, 11, assigned.ID)
}

func TestFindByID(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	saved, err := st.Insert(ctx, model.Transaction{UserID: 42, Amount: dec("150.50"), DateTime: date(2024, 1, 15)})
	require.NoError(t, err)

	got, err := st.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = st.FindByID(ctx, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindByUserAndRange(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	for _, txn := range []model.Transaction{
		{UserID: 42, Amount: dec("10.00"), DateTime: date(2024, 1, 10)},
		{UserID: 42, Amount: dec("20.00"), DateTime: date(2024, 1, 15)},
		{UserID: 42, Amount: dec("30.00"), DateTime: date(2024, 1, 20)},
		{UserID: 7, Amount: dec("40.00"), DateTime: date(2024, 1, 15)},
	} {
		_, err := st.Insert(ctx, txn)
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		from *time.Time
		to   *time.Time
		want int
	}{
		{"no bounds", nil, nil, 3},
		{"from only", ptr(date(2024, 1, 15)), nil, 2},
		{"to only", nil, ptr(date(2024, 1, 15)), 2},
		{"both bounds inclusive", ptr(date(2024, 1, 10)), ptr(date(2024, 1, 20)), 3},
		{"exact match", ptr(date(2024, 1, 15)), ptr(date(2024, 1, 15)), 1},
		{"empty range", ptr(date(2024, 6, 1)), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := st.FindByUserAndRange(ctx, 42, tt.from, tt.to)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFindByUserAndRange_OrderedByID(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	for _, txn := range []model.Transaction{
		{ID: 3, UserID: 1, Amount: dec("3"), DateTime: date(2024, 1, 3)},
		{ID: 1, UserID: 1, Amount: dec("1"), DateTime: date(2024, 1, 1)},
		{ID: 2, UserID: 1, Amount: dec("2"), DateTime: date(2024, 1, 2)},
	} {
		_, err := st.Insert(ctx, txn)
		require.NoError(t, err)
	}

	got, err := st.FindByUserAndRange(ctx, 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestClear(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	_, err := st.Insert(ctx, model.Transaction{UserID: 1, Amount: dec("10.00"), DateTime: date(2024, 1, 1)})
	require.NoError(t, err)

	require.NoError(t, st.Clear(ctx))

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// ID allocation restarts after a clear.
	saved, err := st.Insert(ctx, model.Transaction{UserID: 1, Amount: dec("10.00"), DateTime: date(2024, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)
}

func TestConcurrentInserts_UniqueIDs(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	ids := make(chan int, writers*perWriter)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				saved, err := st.Insert(ctx, model.Transaction{
					UserID:   userID,
					Amount:   dec("1.00"),
					DateTime: date(2024, 1, 1),
				})
				assert.NoError(t, err)
				ids <- saved.ID
			}
		}(w + 1)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers*perWriter)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, count)
}

func ptr(t time.Time) *time.Time {
	return &t
}
