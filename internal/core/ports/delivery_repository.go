package ports

import (
	"context"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for deliveries.
type DeliveryRepository interface {
	// Add persists a new delivery.
	Add(ctx context.Context, d *delivery.Delivery) error

	// Update persists a delivery's current status.
	Update(ctx context.Context, d *delivery.Delivery) error

	// GetByOrder retrieves every delivery fulfilling the given order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*delivery.Delivery, error)
}
