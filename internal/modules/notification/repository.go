package notification

import (
	"context"
	"errors"
)

// ErrNotificationNotFound is returned when the addressed notification
// does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// Repository defines notification storage.
type Repository interface {
	// Create appends a new notification.
	Create(ctx context.Context, n *Notification) error

	// ListByShop returns a shop's notifications, newest first.
	ListByShop(ctx context.Context, shopID string) ([]*Notification, error)

	// MarkRead flags one notification as read.
	MarkRead(ctx context.Context, id string) error
}
