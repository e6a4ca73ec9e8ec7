package order

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by the order module.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order status may not move backward")
	ErrStatusConflict    = errors.New("order status changed concurrently")
)

// Repository defines data access for orders.
type Repository interface {
	// Create persists a new order and its lines atomically in a transaction.
	Create(ctx context.Context, o *Order) error

	// GetByID retrieves an order with its lines.
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByShop returns all orders for a shop, optionally filtered by status.
	ListByShop(ctx context.Context, shopID string, status Status) ([]*Order, error)

	// ListByBuyer returns all orders placed by a buyer.
	ListByBuyer(ctx context.Context, buyerID string) ([]*Order, error)

	// UpdateStatus advances an order from one status to another, stamping
	// the delivery timestamps for the two delivery states. The write is
	// conditional on the order still holding the from status; a
	// concurrent transition surfaces as ErrStatusConflict, so a stale
	// validation can never persist a backward move.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}
