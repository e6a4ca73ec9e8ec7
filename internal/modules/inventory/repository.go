package inventory

import (
	"context"
	"errors"
	"fmt"
)

// Common errors returned by the repository.
var (
	ErrStockNotFound     = errors.New("stock record not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// InsufficientStockError reports a failed reservation together with the
// stock that was available at the moment of the attempt. It matches
// ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Repository defines stock storage. Reserve is the single stock-mutating
// path during checkout; no other writer decrements stock.
type Repository interface {
	// GetStock returns the current stock of one variant.
	GetStock(ctx context.Context, productID, color, size string) (*StockLevel, error)

	// Reserve atomically decrements the variant's stock by qty if and only
	// if at least qty units are available. Concurrent calls for the same
	// variant are linearizable: no interleaving can drive stock negative.
	// On shortfall it returns an *InsufficientStockError carrying the
	// pre-decrement available stock.
	Reserve(ctx context.Context, productID, color, size string, qty int) (*Reservation, error)

	// Restock atomically adds qty units to the variant's stock and returns
	// the new level.
	Restock(ctx context.Context, productID, color, size string, qty int) (*StockLevel, error)
}
