// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence.
package deliveryrepo

import (
	"github.com/google/uuid"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
)

// DeliveryDTO represents the database structure for persisting deliveries.
type DeliveryDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	Status  string    `gorm:"type:text;index"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery domain entity to its database representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:      d.ID().Bytes(),
		OrderID: d.OrderID().Bytes(),
		Status:  d.Status().String(),
	}
}

// toDomain converts a database DTO to a delivery domain entity.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, orderID, status)
}
