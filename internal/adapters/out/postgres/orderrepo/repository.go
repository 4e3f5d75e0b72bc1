package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// Updates are partial: only the columns the aggregate and its items report
// as changed are written back. Whenever the status column is saved, the
// status_updated_at column is saved with it.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order aggregate with its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the changes of an existing order aggregate: touched order
// columns, touched columns of every item, new items, and removed items.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := r.updateOrderColumns(ctx, aggregate); err != nil {
		return err
	}

	if err := r.deleteRemovedItems(ctx, aggregate); err != nil {
		return err
	}

	for _, item := range aggregate.Items() {
		if err := r.saveItem(ctx, item); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) updateOrderColumns(ctx context.Context, aggregate *order.Order) error {
	fields := aggregate.ChangedFields()
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]any, len(fields)+1)
	for _, field := range fields {
		updates[field] = orderColumnValue(aggregate, field)
		if field == order.FieldStatus {
			updates["status_updated_at"] = aggregate.StatusUpdatedAt()
		}
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormOrderRepository) deleteRemovedItems(ctx context.Context, aggregate *order.Order) error {
	removed := aggregate.RemovedItemIDs()
	if len(removed) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(removed))
	for _, id := range removed {
		ids = append(ids, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&OrderItemDTO{}).Error
}

func (r *GormOrderRepository) saveItem(ctx context.Context, item *order.OrderItem) error {
	if item.IsNew() {
		dto := itemFromDomain(item)
		return r.db.WithContext(ctx).Create(&dto).Error
	}

	fields := item.ChangedFields()
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]any, len(fields))
	for _, field := range fields {
		updates[field] = itemColumnValue(item, field)
	}

	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ?", item.ID().Bytes()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func orderColumnValue(aggregate *order.Order, field string) any {
	switch field {
	case "title":
		return aggregate.Title()
	case "comment":
		return aggregate.Comment()
	case "manager_id":
		if id := aggregate.ManagerID(); id != nil {
			return id.Bytes()
		}
		return nil
	case order.FieldStatus:
		return aggregate.Status().String()
	case "dereservation_at":
		return aggregate.DereservationAt()
	default:
		return nil
	}
}

func itemColumnValue(item *order.OrderItem, field string) any {
	switch field {
	case order.FieldAmount:
		return item.Amount()
	case order.FieldPrice:
		return item.Price()
	case order.FieldVAT:
		return item.VAT()
	case order.FieldSum:
		return item.Sum()
	case order.FieldVATSum:
		return item.VATSum()
	case order.FieldStatus:
		return item.Status().String()
	case order.FieldItemOrder:
		return item.OrderID().Bytes()
	default:
		return nil
	}
}

// Get retrieves an order aggregate by ID, including its items and the read
// snapshot of its delivery statuses.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	deliveryStatuses, err := r.loadDeliveryStatuses(ctx, id)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, deliveryStatuses)
}

// GetAllReservedBefore retrieves reserved orders whose dereservation time has
// passed.
func (r *GormOrderRepository) GetAllReservedBefore(ctx context.Context, deadline time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&dtos, "status = ? AND dereservation_at IS NOT NULL AND dereservation_at <= ?",
			order.Reserved.String(), deadline).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		deliveryStatuses, statusErr := r.loadDeliveryStatuses(ctx, id)
		if statusErr != nil {
			return nil, statusErr
		}
		aggregate, toErr := toDomain(dto, deliveryStatuses)
		if toErr != nil {
			return nil, toErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

func (r *GormOrderRepository) loadDeliveryStatuses(ctx context.Context, orderID kernel.UUID) ([]delivery.Status, error) {
	var raw []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT status FROM deliveries WHERE order_id = ? ORDER BY id`, orderID.Bytes()).
		Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	statuses := make([]delivery.Status, 0, len(raw))
	for _, s := range raw {
		status, parseErr := delivery.StatusFromString(s)
		if parseErr != nil {
			return nil, parseErr
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
