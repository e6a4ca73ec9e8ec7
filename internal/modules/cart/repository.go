package cart

import (
	"context"
	"errors"
)

// ErrLineNotFound is returned when the addressed cart line does not exist.
var ErrLineNotFound = errors.New("cart line not found")

// Repository defines persistent cart storage. Line order is preserved
// across reads.
type Repository interface {
	// GetCart returns the buyer's cart. A buyer with no lines gets an
	// empty cart, not an error.
	GetCart(ctx context.Context, buyerID string) (*Cart, error)

	// UpsertLine inserts the line, or adds its quantity to an existing
	// line for the same (product, color, size).
	UpsertLine(ctx context.Context, buyerID string, line Line) error

	// UpdateQuantity sets the quantity of an existing line.
	UpdateQuantity(ctx context.Context, buyerID, productID, color, size string, qty int) error

	// RemoveLine deletes one line.
	RemoveLine(ctx context.Context, buyerID, productID, color, size string) error

	// Clear removes every line of the buyer's cart.
	Clear(ctx context.Context, buyerID string) error
}
