package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// MarkOrderPaidCommandHandler runs the CONFIRMED to PAID transition and
// marks every non-canceled delivery of the order paid inside the same unit
// of work. After commit it notifies the external system of the paid
// deliveries; that dispatch is fire-and-forget.
type MarkOrderPaidCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	dispatcher ports.EventDispatcher
	logger     *slog.Logger
}

// NewMarkOrderPaidCommandHandler creates a handler for order settlement.
func NewMarkOrderPaidCommandHandler(
	uowFactory FulfillmentUoWFactory,
	dispatcher ports.EventDispatcher,
	logger *slog.Logger,
) MarkOrderPaidCommandHandler {
	return MarkOrderPaidCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "mark_order_paid_command_handler"),
	}
}

// Handle processes the settlement command.
func (h *MarkOrderPaidCommandHandler) Handle(ctx context.Context, cmd MarkOrderPaidCommand) error {
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

	if err = aggregate.Apply(order.EventMarkPaid, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	deliveryRepo := uow.DeliveryRepository()
	deliveries, err := deliveryRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	for _, d := range deliveries {
		if d.Status() == delivery.Canceled {
			continue
		}
		if err = d.MarkPaid(); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, d); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]string{"order_id": aggregate.ID().String()}
	if err = h.dispatcher.Dispatch(ctx, ports.EventExternalDeliveryPaid, payload); err != nil {
		h.logger.ErrorContext(ctx, "Failed to dispatch paid delivery notification",
			"order_id", aggregate.ID(), "error", err)
	}

	return nil
}
