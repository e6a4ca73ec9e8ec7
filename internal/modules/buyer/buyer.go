package buyer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBuyerNotFound is returned when no buyer exists for the given id.
var ErrBuyerNotFound = errors.New("buyer not found")

// Buyer represents a buyer's contact profile as consumed by checkout.
// Credentials and session state live in a separate identity service.
type Buyer struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	DeliveryLocation string    `json:"delivery_location,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Repository defines buyer profile storage.
type Repository interface {
	CreateBuyer(ctx context.Context, b *Buyer) error
	GetBuyerByID(ctx context.Context, id string) (*Buyer, error)
	UpdateContact(ctx context.Context, id string, name, phone, deliveryLocation string) error
}
