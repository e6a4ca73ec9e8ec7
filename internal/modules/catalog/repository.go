package catalog

import (
	"context"
	"errors"
)

// ErrProductNotFound is returned when a product, or the requested
// (color, size) combination of it, does not exist.
var ErrProductNotFound = errors.New("product not found")

// Repository defines read access to the catalog.
type Repository interface {
	// GetProduct retrieves a product with its variants, sizes, and offer.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListShopProducts returns all active products of a shop.
	ListShopProducts(ctx context.Context, shopID string) ([]*Product, error)

	// ResolveLine looks up the live price, offer, and stock for one
	// (product, color, size) combination.
	ResolveLine(ctx context.Context, productID, color, size string) (*ResolvedLine, error)
}
