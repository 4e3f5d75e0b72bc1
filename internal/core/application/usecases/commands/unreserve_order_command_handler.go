package commands

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// UnreserveOrderCommandHandler runs the RESERVED to DRAFT transition.
type UnreserveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUnreserveOrderCommandHandler creates a handler for reservation release.
func NewUnreserveOrderCommandHandler(uowFactory OrderUoWFactory) UnreserveOrderCommandHandler {
	return UnreserveOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the release command.
func (h *UnreserveOrderCommandHandler) Handle(ctx context.Context, cmd UnreserveOrderCommand) error {
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

	if err = aggregate.Apply(order.EventUnreserve, time.Now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
