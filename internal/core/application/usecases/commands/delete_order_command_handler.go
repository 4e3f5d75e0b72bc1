package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/stock"
)

// DeleteOrderCommandHandler soft-deletes a draft or reserved order. Reserved
// stock is released by removing the order's batch transactions, and the
// order's deliveries are marked deleted in the same unit of work.
type DeleteOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewDeleteOrderCommandHandler creates a handler for order deletion.
func NewDeleteOrderCommandHandler(uowFactory FulfillmentUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the deletion command.
func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Apply(order.EventDelete, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	txRepo := uow.TransactionRepository()
	held, err := txRepo.GetByOwner(ctx, stock.OwnerOrder, aggregate.ID())
	if err != nil {
		return err
	}
	if len(held) > 0 {
		if err = txRepo.DeleteByOwner(ctx, stock.OwnerOrder, aggregate.ID()); err != nil {
			return err
		}
	}

	deliveryRepo := uow.DeliveryRepository()
	deliveries, err := deliveryRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, d := range deliveries {
		if d.Status() == delivery.Deleted {
			continue
		}
		d.MarkDeleted()
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
