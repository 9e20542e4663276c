package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Update flushes the aggregate's pending audit events, failure ledger rows
// and comments in the same transaction as the delivery row, and enforces
// optimistic concurrency on the version counter.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate and its pending children.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate and its
	// pending children. Returns a version conflict error when the stored
	// version no longer matches the aggregate's.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery fulfilling the given order,
	// or an object-not-found error when none exists yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}
