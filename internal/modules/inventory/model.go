package inventory

import (
	"time"

	"github.com/google/uuid"
)

// StockLevel is the live stock count of one (product, color, size) variant.
type StockLevel struct {
	ProductID uuid.UUID `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Stock     int       `json:"stock"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reservation is the outcome of a successful atomic test-and-decrement.
type Reservation struct {
	ProductID uuid.UUID `json:"product_id"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`

	// JustSoldOut is set when this reservation took the variant's stock
	// to exactly zero. The notification dispatcher consumes it.
	JustSoldOut bool `json:"just_sold_out"`
}
