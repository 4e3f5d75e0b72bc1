package commands

import (
	"context"
	"fmt"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// GenerateDeliveriesCommandHandler creates a planned delivery for a draft
// order that has none yet.
type GenerateDeliveriesCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewGenerateDeliveriesCommandHandler creates a handler for delivery generation.
func NewGenerateDeliveriesCommandHandler(uowFactory FulfillmentUoWFactory) GenerateDeliveriesCommandHandler {
	return GenerateDeliveriesCommandHandler{uowFactory: uowFactory}
}

// Handle processes the delivery generation command.
func (h *GenerateDeliveriesCommandHandler) Handle(ctx context.Context, cmd GenerateDeliveriesCommand) error {
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

	if aggregate.Status() != order.Draft {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("deliveries can only be generated for a %s order, got %s",
				order.Draft, aggregate.Status()),
		)
	}

	deliveryRepo := uow.DeliveryRepository()
	existing, err := deliveryRepo.GetByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return uow.Commit(ctx)
	}

	planned, err := delivery.NewDelivery(kernel.NewUUID(), aggregate.ID())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, planned); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
