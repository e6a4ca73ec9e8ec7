package catalog

import "context"

// Service defines buyer-facing catalog reads. Catalog editing happens in a
// separate back-office system and is not exposed here.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListShopProducts(ctx context.Context, shopID string) ([]*Product, error)

	// ResolveLine returns the live price, offer, and stock for one
	// (product, color, size) combination. Used by cart reads and checkout.
	ResolveLine(ctx context.Context, productID, color, size string) (*ResolvedLine, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) ListShopProducts(ctx context.Context, shopID string) ([]*Product, error) {
	return s.repo.ListShopProducts(ctx, shopID)
}

func (s *service) ResolveLine(ctx context.Context, productID, color, size string) (*ResolvedLine, error) {
	return s.repo.ResolveLine(ctx, productID, color, size)
}
