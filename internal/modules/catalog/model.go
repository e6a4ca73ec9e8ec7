package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is an item listed by a shop. Variants carry the sellable
// (color, size) combinations; stock itself is owned by the inventory module.
type Product struct {
	ID          uuid.UUID      `json:"id"`
	ShopID      uuid.UUID      `json:"shop_id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Image       string         `json:"image,omitempty"`
	Colors      []ColorVariant `json:"colors,omitempty"`
	Offer       *Offer         `json:"offer,omitempty"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ColorVariant is one color of a product with its size breakdown.
type ColorVariant struct {
	Name         string      `json:"name"`
	PreviewImage string      `json:"preview_image,omitempty"`
	Images       []string    `json:"images,omitempty"`
	Sizes        []SizeStock `json:"sizes,omitempty"`
}

// SizeStock is the live stock count for one (color, size) combination.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Offer is a time-bound percentage discount attached to a product.
type Offer struct {
	DiscountPercentage float64   `json:"discount_percentage"`
	ExpiresAt          time.Time `json:"expires_at"`
}

// ValidAt reports whether the offer is still applicable at the given
// instant. The expiry bound is exclusive: an offer expiring exactly now
// no longer applies.
func (o *Offer) ValidAt(now time.Time) bool {
	if o == nil {
		return false
	}
	return o.ExpiresAt.After(now)
}

// ResolvedLine is the catalog's answer for one (product, color, size)
// lookup during a cart snapshot read: current price, offer, and stock.
type ResolvedLine struct {
	ProductID uuid.UUID `json:"product_id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Stock     int       `json:"stock"`
	Offer     *Offer    `json:"offer,omitempty"`
}
