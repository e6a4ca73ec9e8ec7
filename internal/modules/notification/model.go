package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification tells a shop that one of its variants just sold out.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	ProductID uuid.UUID `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SoldOutEvent is emitted by checkout when a reservation drives a
// variant's stock to exactly zero.
type SoldOutEvent struct {
	ShopID    uuid.UUID
	ProductID uuid.UUID
	Color     string
	Size      string
}
