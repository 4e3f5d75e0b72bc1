package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An aggregate is stored together with its items: updates persist exactly
// the fields the aggregate reports as changed, delete the items it dropped,
// and implicitly maintain the status-change timestamp whenever status is
// among the saved fields.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the changes of an existing order aggregate: touched
	// order fields, touched fields of every item, new items, and removed
	// items, all within the current transaction.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its items and the read snapshot of its delivery statuses.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllReservedBefore retrieves reserved orders whose dereservation
	// time has passed. Used by the dereservation job.
	GetAllReservedBefore(ctx context.Context, deadline time.Time) ([]*order.Order, error)
}
