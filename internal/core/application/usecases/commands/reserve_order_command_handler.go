package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// ReserveOrderCommandHandler runs the DRAFT to RESERVED transition inside a
// single unit of work: zero-amount items are deleted, the dereservation
// timer starts, and the remaining items flip to Reserve status.
type ReserveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewReserveOrderCommandHandler creates a handler for order reservation.
func NewReserveOrderCommandHandler(uowFactory OrderUoWFactory) ReserveOrderCommandHandler {
	return ReserveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reservation command. A transition rejected by the
// state machine surfaces as an error wrapping order.ErrTransitionNotAllowed
// and leaves the order untouched.
func (h *ReserveOrderCommandHandler) Handle(ctx context.Context, cmd ReserveOrderCommand) error {
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

	if err = aggregate.Apply(order.EventReserve, time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
