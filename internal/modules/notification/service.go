package notification

import "context"

// Service defines the shop-facing notification reads and the mark-read
// action. Creation happens only through the dispatcher.
type Service interface {
	ListShopNotifications(ctx context.Context, shopID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new notification service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListShopNotifications(ctx context.Context, shopID string) ([]*Notification, error) {
	return s.repo.ListByShop(ctx, shopID)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
