package order

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusNew              Status = "NEW"
	StatusPending          Status = "PENDING"
	StatusPrepared         Status = "PREPARED"
	StatusDeliveredToAdmin Status = "DELIVERED_TO_ADMIN"
	StatusDelivered        Status = "DELIVERED"
)

// statusRank orders the lifecycle. A transition is valid when it moves
// strictly forward; skipping intermediate states is allowed, moving
// backward is not.
var statusRank = map[Status]int{
	StatusNew:              0,
	StatusPending:          1,
	StatusPrepared:         2,
	StatusDeliveredToAdmin: 3,
	StatusDelivered:        4,
}

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether the order may move from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Order is one shop's committed slice of a checkout. Immutable once
// created except for Status and the two delivery timestamps.
type Order struct {
	ID                 uuid.UUID  `json:"id"`
	OrderNumber        string     `json:"order_number"`
	ShopID             uuid.UUID  `json:"shop_id"`
	BuyerID            uuid.UUID  `json:"buyer_id"`
	BuyerName          string     `json:"buyer_name"`
	BuyerPhone         string     `json:"buyer_phone"`
	DeliveryLocation   string     `json:"delivery_location"`
	Lines              []Line     `json:"lines"`
	TotalPrice         float64    `json:"total_price"`
	Status             Status     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	DeliveredToAdminAt *time.Time `json:"delivered_to_admin_at,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
}

// Line is a single reserved item within an order. UnitPrice is the
// post-discount price at the moment of reservation and is never
// recomputed.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Image     string    `json:"image,omitempty"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
