package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
)

// NotificationRepository defines the persistence contract for notifications.
type NotificationRepository interface {
	// Add persists new notifications. A no-op for an empty slice, so
	// callers can pass dispatcher output unconditionally.
	Add(ctx context.Context, notifications ...*delivery.Notification) error

	// Update persists changes to an existing notification.
	Update(ctx context.Context, notification *delivery.Notification) error

	// Get retrieves a notification by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Notification, error)
}
