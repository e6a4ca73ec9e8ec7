package shop

import (
	"context"

	"github.com/google/uuid"
)

// Service defines shop registry business logic.
type Service interface {
	CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error)
	GetShop(ctx context.Context, id string) (*Shop, error)
	ListShops(ctx context.Context, activeOnly bool) ([]*Shop, error)
}

// CreateShopRequest holds the data for registering a shop.
type CreateShopRequest struct {
	Name      string `json:"name"`
	OwnerName string `json:"owner_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type service struct{ repo Repository }

// NewService creates a new shop service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error) {
	sh := &Shop{
		ID:        uuid.New(),
		Name:      req.Name,
		OwnerName: req.OwnerName,
		Phone:     req.Phone,
		Email:     req.Email,
		IsActive:  true,
	}
	if err := s.repo.CreateShop(ctx, sh); err != nil {
		return nil, err
	}
	return sh, nil
}

func (s *service) GetShop(ctx context.Context, id string) (*Shop, error) {
	return s.repo.GetShopByID(ctx, id)
}

func (s *service) ListShops(ctx context.Context, activeOnly bool) ([]*Shop, error) {
	return s.repo.ListShops(ctx, activeOnly)
}
