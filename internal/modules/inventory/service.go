package inventory

import "context"

// Service defines stock business logic. Reserve is consumed by checkout
// only; the HTTP surface exposes reads and shop-side restocking.
type Service interface {
	GetStock(ctx context.Context, productID, color, size string) (*StockLevel, error)
	Reserve(ctx context.Context, productID, color, size string, qty int) (*Reservation, error)
	Restock(ctx context.Context, productID, color, size string, qty int) (*StockLevel, error)
}

type service struct{ repo Repository }

// NewService creates a new inventory service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetStock(ctx context.Context, productID, color, size string) (*StockLevel, error) {
	return s.repo.GetStock(ctx, productID, color, size)
}

func (s *service) Reserve(ctx context.Context, productID, color, size string, qty int) (*Reservation, error) {
	return s.repo.Reserve(ctx, productID, color, size, qty)
}

func (s *service) Restock(ctx context.Context, productID, color, size string, qty int) (*StockLevel, error) {
	return s.repo.Restock(ctx, productID, color, size, qty)
}
