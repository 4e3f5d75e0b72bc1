package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrReserveOrderCommandIsNotConstructed = errors.New(
	"ReserveOrderCommand must be created via NewReserveOrderCommand constructor",
)

// ReserveOrderCommand requests the DRAFT to RESERVED transition: stock is
// held for the order's items until the dereservation timer expires or the
// order is confirmed.
type ReserveOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReserveOrderCommand creates a command to reserve a draft order.
func NewReserveOrderCommand(orderID kernel.UUID) (ReserveOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ReserveOrderCommand{}, err
	}

	return ReserveOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReserveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to reserve.
func (c ReserveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
