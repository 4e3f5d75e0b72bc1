package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGenerateDeliveriesCommandIsNotConstructed = errors.New(
	"GenerateDeliveriesCommand must be created via NewGenerateDeliveriesCommand constructor",
)

// GenerateDeliveriesCommand requests creation of a planned delivery for a
// draft order. Orders past the draft stage already have their deliveries.
type GenerateDeliveriesCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGenerateDeliveriesCommand creates a command to generate deliveries.
func NewGenerateDeliveriesCommand(orderID kernel.UUID) (GenerateDeliveriesCommand, error) {
	if err := orderID.Validate(); err != nil {
		return GenerateDeliveriesCommand{}, err
	}

	return GenerateDeliveriesCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrGenerateDeliveriesCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to generate deliveries for.
func (c GenerateDeliveriesCommand) OrderID() kernel.UUID {
	return c.orderID
}
