package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T, stock int) (*MemoryRepository, uuid.UUID) {
	t.Helper()
	repo := NewMemoryRepository()
	productID := uuid.New()
	repo.SetStock(productID, "black", "M", stock)
	return repo, productID
}

func TestReserve_Success(t *testing.T) {
	repo, productID := setupRepo(t, 5)

	res, err := repo.Reserve(context.Background(), productID.String(), "black", "M", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, 3, res.Remaining)
	assert.False(t, res.JustSoldOut)

	s, err := repo.GetStock(context.Background(), productID.String(), "black", "M")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Stock)
}

func TestReserve_InsufficientStock(t *testing.T) {
	repo, productID := setupRepo(t, 1)

	_, err := repo.Reserve(context.Background(), productID.String(), "black", "M", 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var shortfall *InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 2, shortfall.Requested)
	assert.Equal(t, 1, shortfall.Available)

	// Stock unchanged: no partial decrement is ever observable.
	s, err := repo.GetStock(context.Background(), productID.String(), "black", "M")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Stock)
}

func TestReserve_JustSoldOut(t *testing.T) {
	repo, productID := setupRepo(t, 3)

	res, err := repo.Reserve(context.Background(), productID.String(), "black", "M", 3)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Remaining)
	assert.True(t, res.JustSoldOut)
}

func TestReserve_UnknownVariant(t *testing.T) {
	repo, productID := setupRepo(t, 3)

	_, err := repo.Reserve(context.Background(), productID.String(), "red", "XL", 1)
	assert.ErrorIs(t, err, ErrStockNotFound)
}

func TestReserve_InvalidQuantity(t *testing.T) {
	repo, productID := setupRepo(t, 3)

	_, err := repo.Reserve(context.Background(), productID.String(), "black", "M", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = repo.Reserve(context.Background(), productID.String(), "black", "M", -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// Two concurrent reservations racing for the last unit: exactly one wins,
// the loser observes the shortfall, final stock is zero.
func TestReserve_RaceForLastUnit(t *testing.T) {
	repo, productID := setupRepo(t, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.Reserve(context.Background(), productID.String(), "black", "M", 1)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(t, err, ErrInsufficientStock):
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)

	s, err := repo.GetStock(context.Background(), productID.String(), "black", "M")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Stock)
}

// A storm of concurrent reservations can never drive stock negative and
// the winners' quantities sum to at most the initial stock.
func TestReserve_ConcurrentStorm(t *testing.T) {
	const initial = 50
	const attempts = 200
	repo, productID := setupRepo(t, initial)

	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := repo.Reserve(context.Background(), productID.String(), "black", "M", 1)
			if err == nil {
				mu.Lock()
				reserved += res.Quantity
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, initial, reserved)
	s, err := repo.GetStock(context.Background(), productID.String(), "black", "M")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Stock)
	assert.GreaterOrEqual(t, s.Stock, 0)
}

func TestRestock(t *testing.T) {
	repo, productID := setupRepo(t, 0)

	s, err := repo.Restock(context.Background(), productID.String(), "black", "M", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, s.Stock)

	_, err = repo.Restock(context.Background(), productID.String(), "black", "M", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = repo.Restock(context.Background(), productID.String(), "red", "M", 1)
	assert.ErrorIs(t, err, ErrStockNotFound)
}
