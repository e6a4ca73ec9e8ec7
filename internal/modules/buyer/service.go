package buyer

import "context"

// Service defines the interface for buyer profile business logic.
type Service interface {
	RegisterBuyer(ctx context.Context, name, phone, email, deliveryLocation string) (*Buyer, error)
	GetBuyer(ctx context.Context, id string) (*Buyer, error)
	UpdateContact(ctx context.Context, id string, name, phone, deliveryLocation string) (*Buyer, error)
}
