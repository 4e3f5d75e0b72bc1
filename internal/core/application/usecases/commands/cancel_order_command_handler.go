package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/stock"
)

// CancelOrderCommandHandler runs the cancel transition, releases every batch
// transaction held by the order and cancels its deliveries inside the same
// unit of work.
type CancelOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory FulfillmentUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = aggregate.Apply(order.EventCancel, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	txRepo := uow.TransactionRepository()
	if err = txRepo.DeleteByOwner(ctx, stock.OwnerOrder, aggregate.ID()); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	deliveries, err := deliveryRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, d := range deliveries {
		if d.Status() == delivery.Canceled || d.Status() == delivery.Deleted {
			continue
		}
		d.MarkCanceled()
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
