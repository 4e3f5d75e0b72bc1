package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// ReleaseExpiredReservationsCommandHandler finds reserved orders whose
// dereservation time has passed and runs the unreserve transition on each.
// Every order is released in its own unit of work so one failure does not
// keep the rest reserved.
type ReleaseExpiredReservationsCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *slog.Logger
}

// NewReleaseExpiredReservationsCommandHandler creates a handler for the
// dereservation sweep.
func NewReleaseExpiredReservationsCommandHandler(
	uowFactory OrderUoWFactory,
	logger *slog.Logger,
) ReleaseExpiredReservationsCommandHandler {
	return ReleaseExpiredReservationsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "release_expired_reservations_command_handler"),
	}
}

// Handle processes the dereservation sweep command.
func (h *ReleaseExpiredReservationsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseExpiredReservationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	expired, err := uow.OrderRepository().GetAllReservedBefore(ctx, cmd.Now())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return err
	}

	for _, aggregate := range expired {
		if releaseErr := h.release(ctx, aggregate.ID(), cmd); releaseErr != nil {
			h.logger.ErrorContext(ctx, "Failed to release expired reservation",
				"order_id", aggregate.ID(), "error", releaseErr)
		}
	}

	return nil
}

func (h *ReleaseExpiredReservationsCommandHandler) release(
	ctx context.Context,
	orderID kernel.UUID,
	cmd ReleaseExpiredReservationsCommand,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = aggregate.Apply(order.EventUnreserve, cmd.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
