package checkout

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mkamanga/sokoni-backend/internal/modules/cart"
	"github.com/mkamanga/sokoni-backend/internal/modules/catalog"
	"github.com/mkamanga/sokoni-backend/internal/modules/order"
)

// Precondition errors abort the checkout before any side effect.
var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Request is the boundary input of the checkout operation.
type Request struct {
	BuyerID          string  `json:"buyer_id"`
	DeliveryLocation string  `json:"delivery_location"`
	ShippingCost     float64 `json:"shipping_cost"`
}

// ResultStatus distinguishes a clean checkout from a partial one.
type ResultStatus string

const (
	StatusCompleted          ResultStatus = "COMPLETED"
	StatusPartiallyCompleted ResultStatus = "PARTIALLY_COMPLETED"
)

// FailedItem is a cart line that could not be fulfilled, with the
// requested against the available quantity so the buyer can decide
// whether to retry.
type FailedItem struct {
	ShopID    uuid.UUID `json:"shop_id"`
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// ShopFailure reports a shop whose order could not be persisted. Stock
// already reserved for that shop is not returned; checkout is
// best-effort across shops.
type ShopFailure struct {
	ShopID uuid.UUID `json:"shop_id"`
	Reason string    `json:"reason"`
}

// Result is the boundary output of the checkout operation.
type Result struct {
	Status      ResultStatus   `json:"status"`
	Orders      []*order.Order `json:"created_orders"`
	FailedItems []FailedItem   `json:"failed_items"`
	FailedShops []ShopFailure  `json:"failed_shops,omitempty"`
}

// resolvedLine pairs a cart line with its live catalog state at the
// moment the snapshot was taken. Authoritative pricing comes from here,
// never from the cart's advisory snapshot.
type resolvedLine struct {
	cart.Line
	liveUnitPrice float64
	liveOffer     *catalog.Offer
}
