package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
)

// Cart is a buyer's pre-checkout selection across any number of shops.
type Cart struct {
	BuyerID uuid.UUID `json:"buyer_id"`
	Lines   []Line    `json:"lines"`
}

// Line is one chosen (product, color, size) combination. Title, image,
// price, and offer are denormalized at add-time; the offer snapshot is
// refreshed on repository reads (cached reads may lag) but stays
// advisory. Authoritative pricing is always recomputed at checkout from
// the catalog.
type Line struct {
	ShopID         uuid.UUID      `json:"shop_id"`
	ProductID      uuid.UUID      `json:"product_id"`
	Color          string         `json:"color"`
	Size           string         `json:"size"`
	Quantity       int            `json:"quantity"`
	Title          string         `json:"title"`
	Image          string         `json:"image,omitempty"`
	UnitPriceAtAdd float64        `json:"unit_price_at_add"`
	OfferSnapshot  *catalog.Offer `json:"offer_snapshot,omitempty"`
	AddedAt        time.Time      `json:"added_at"`
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool { return c == nil || len(c.Lines) == 0 }
