package buyer

import (
	"context"

	"github.com/google/uuid"
)

type service struct {
	repo Repository
}

// NewService creates a new buyer service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterBuyer(ctx context.Context, name, phone, email, deliveryLocation string) (*Buyer, error) {
	b := &Buyer{
		ID:               uuid.New(),
		Name:             name,
		Phone:            phone,
		Email:            email,
		DeliveryLocation: deliveryLocation,
	}
	if err := s.repo.CreateBuyer(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBuyer(ctx context.Context, id string) (*Buyer, error) {
	return s.repo.GetBuyerByID(ctx, id)
}

func (s *service) UpdateContact(ctx context.Context, id string, name, phone, deliveryLocation string) (*Buyer, error) {
	if err := s.repo.UpdateContact(ctx, id, name, phone, deliveryLocation); err != nil {
		return nil, err
	}
	return s.repo.GetBuyerByID(ctx, id)
}
