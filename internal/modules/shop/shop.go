package shop

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrShopNotFound is returned when no shop exists for the given id.
var ErrShopNotFound = errors.New("shop not found")

// Shop represents an independent seller with its own catalog, stock,
// orders, and notifications.
type Shop struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerName string    `json:"owner_name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines shop registry storage.
type Repository interface {
	CreateShop(ctx context.Context, s *Shop) error
	GetShopByID(ctx context.Context, id string) (*Shop, error)
	ListShops(ctx context.Context, activeOnly bool) ([]*Shop, error)
}
