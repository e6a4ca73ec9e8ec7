package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines order queries and the lifecycle transition hook.
// Order creation happens exclusively through checkout.
type Service interface {
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListShopOrders(ctx context.Context, shopID string, status string) ([]*Order, error)
	ListBuyerOrders(ctx context.Context, buyerID string) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status. Forward
	// jumps are allowed; backward moves are rejected.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListShopOrders(ctx context.Context, shopID string, status string) ([]*Order, error) {
	st := Status(strings.ToUpper(status))
	if status != "" && !st.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.repo.ListByShop(ctx, shopID, st)
}

func (s *service) ListBuyerOrders(ctx context.Context, buyerID string) ([]*Order, error) {
	return s.repo.ListByBuyer(ctx, buyerID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := Status(strings.ToUpper(req.Status))
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}
	if !o.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, newStatus)
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, o.Status, newStatus, now); err != nil {
		return nil, err
	}
	o.Status = newStatus
	switch newStatus {
	case StatusDeliveredToAdmin:
		o.DeliveredToAdminAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	}
	return o, nil
}

// NewOrderNumber creates a human-readable order number: SOK-YYYYMMDD-XXXX.
func NewOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("SOK-%s-%s", date, suffix)
}
