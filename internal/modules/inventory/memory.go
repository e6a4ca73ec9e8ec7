package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type variantKey struct {
	productID uuid.UUID
	color     string
	size      string
}

// MemoryRepository implements Repository with in-memory storage. The
// mutex provides the same linearizable test-and-decrement contract as
// the conditional UPDATE in the postgres implementation. Used in tests
// and local development.
type MemoryRepository struct {
	mu     sync.Mutex
	stocks map[variantKey]int
}

// NewMemoryRepository creates an empty in-memory stock store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{stocks: make(map[variantKey]int)}
}

// SetStock sets the stock level for a variant (initialization only).
func (r *MemoryRepository) SetStock(productID uuid.UUID, color, size string, stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stocks[variantKey{productID, color, size}] = stock
}

func (r *MemoryRepository) GetStock(_ context.Context, productID, color, size string) (*StockLevel, error) {
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stock, ok := r.stocks[variantKey{uid, color, size}]
	if !ok {
		return nil, ErrStockNotFound
	}
	return &StockLevel{ProductID: uid, Color: color, Size: size, Stock: stock, UpdatedAt: time.Now()}, nil
}

func (r *MemoryRepository) Reserve(_ context.Context, productID, color, size string, qty int) (*Reservation, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := variantKey{uid, color, size}
	stock, ok := r.stocks[key]
	if !ok {
		return nil, ErrStockNotFound
	}
	if stock < qty {
		return nil, &InsufficientStockError{Requested: qty, Available: stock}
	}
	remaining := stock - qty
	r.stocks[key] = remaining
	return &Reservation{
		ProductID:   uid,
		Color:       color,
		Size:        size,
		Quantity:    qty,
		Remaining:   remaining,
		JustSoldOut: remaining == 0,
	}, nil
}

func (r *MemoryRepository) Restock(_ context.Context, productID, color, size string, qty int) (*StockLevel, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	uid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := variantKey{uid, color, size}
	stock, ok := r.stocks[key]
	if !ok {
		return nil, ErrStockNotFound
	}
	r.stocks[key] = stock + qty
	return &StockLevel{ProductID: uid, Color: color, Size: size, Stock: stock + qty, UpdatedAt: time.Now()}, nil
}
