// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate is stored across two tables, orders
// and order_items, and updates write back only the columns the aggregate
// reports as changed.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrganizationID    uuid.UUID  `gorm:"type:uuid;index"`
	OrganizationTitle string     `gorm:"type:text"`
	ManagerID         *uuid.UUID `gorm:"type:uuid;index"`
	Title             string     `gorm:"type:text"`
	Comment           string     `gorm:"type:text"`
	Status            string     `gorm:"type:text;index"`
	StatusUpdatedAt   *time.Time
	DereservationAt   *time.Time `gorm:"index"`
	CreatedAt         time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents the database structure for persisting order items.
type OrderItemDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	OfferID   uuid.UUID  `gorm:"type:uuid;index"`
	PackageID *uuid.UUID `gorm:"type:uuid"`

	Amount decimal.Decimal `gorm:"type:numeric(12,3)"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2)"`
	VAT    decimal.Decimal `gorm:"type:numeric(5,2)"`
	Sum    decimal.Decimal `gorm:"type:numeric(14,2)"`
	VATSum decimal.Decimal `gorm:"type:numeric(16,4)"`

	Status string `gorm:"type:text"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation, items included.
func fromDomain(aggregate *order.Order) OrderDTO {
	var managerID *uuid.UUID
	if id := aggregate.ManagerID(); id != nil {
		raw := id.Bytes()
		managerID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(item))
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OrganizationID:    aggregate.OrganizationID().Bytes(),
		OrganizationTitle: aggregate.OrganizationTitle(),
		ManagerID:         managerID,
		Title:             aggregate.Title(),
		Comment:           aggregate.Comment(),
		Status:            aggregate.Status().String(),
		StatusUpdatedAt:   aggregate.StatusUpdatedAt(),
		DereservationAt:   aggregate.DereservationAt(),
		CreatedAt:         aggregate.CreatedAt(),
		Items:             items,
	}
}

func itemFromDomain(item *order.OrderItem) OrderItemDTO {
	var packageID *uuid.UUID
	if id := item.PackageID(); id != nil {
		raw := id.Bytes()
		packageID = &raw
	}

	return OrderItemDTO{
		ID:        item.ID().Bytes(),
		OrderID:   item.OrderID().Bytes(),
		OfferID:   item.OfferID().Bytes(),
		PackageID: packageID,
		Amount:    item.Amount(),
		Price:     item.Price(),
		VAT:       item.VAT(),
		Sum:       item.Sum(),
		VATSum:    item.VATSum(),
		Status:    item.Status().String(),
	}
}

// toDomain converts a database DTO to an order domain aggregate, attaching
// the read snapshot of the order's delivery statuses.
func toDomain(dto OrderDTO, deliveryStatuses []delivery.Status) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	organizationID, err := kernel.UUIDFromBytes(dto.OrganizationID[:])
	if err != nil {
		return nil, err
	}

	var managerID *kernel.UUID
	if dto.ManagerID != nil {
		mID, managerErr := kernel.UUIDFromBytes((*dto.ManagerID)[:])
		if managerErr != nil {
			return nil, managerErr
		}
		managerID = &mID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		organizationID,
		dto.OrganizationTitle,
		managerID,
		dto.Title,
		dto.Comment,
		status,
		dto.StatusUpdatedAt,
		dto.DereservationAt,
		dto.CreatedAt,
		items,
		deliveryStatuses,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	offerID, err := kernel.UUIDFromBytes(dto.OfferID[:])
	if err != nil {
		return nil, err
	}

	var packageID *kernel.UUID
	if dto.PackageID != nil {
		pID, packageErr := kernel.UUIDFromBytes((*dto.PackageID)[:])
		if packageErr != nil {
			return nil, packageErr
		}
		packageID = &pID
	}

	status, err := order.ItemStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrderItem(
		id,
		orderID,
		offerID,
		packageID,
		dto.Amount,
		dto.Price,
		dto.VAT,
		dto.Sum,
		dto.VATSum,
		status,
	)
}
