package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ConfirmOrderCommandHandler runs the confirmation transition and, once the
// unit of work has committed, dispatches the external integration events:
// deal registration and order sync. Dispatch failures are logged and never
// fail the already-committed confirmation.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.EventDispatcher
	logger     *slog.Logger
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.EventDispatcher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "confirm_order_command_handler"),
	}
}

// Handle processes the confirmation command.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Apply(order.EventConfirm, time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	payload := map[string]string{"order_id": aggregate.ID().String()}
	if err = h.dispatcher.Dispatch(ctx, ports.EventExternalDealAdd, payload); err != nil {
		h.logger.ErrorContext(ctx, "Failed to dispatch deal registration", "order_id", aggregate.ID(), "error", err)
	}
	if err = h.dispatcher.Dispatch(ctx, ports.EventExternalOrderSync, payload); err != nil {
		h.logger.ErrorContext(ctx, "Failed to dispatch order sync", "order_id", aggregate.ID(), "error", err)
	}

	return nil
}
