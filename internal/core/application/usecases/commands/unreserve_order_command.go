package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrUnreserveOrderCommandIsNotConstructed = errors.New(
	"UnreserveOrderCommand must be created via NewUnreserveOrderCommand constructor",
)

// UnreserveOrderCommand requests the RESERVED to DRAFT transition: the
// dereservation timer is cleared and every item returns to New status.
type UnreserveOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnreserveOrderCommand creates a command to release a reservation.
func NewUnreserveOrderCommand(orderID kernel.UUID) (UnreserveOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnreserveOrderCommand{}, err
	}

	return UnreserveOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnreserveOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnreserveOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to release.
func (c UnreserveOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
