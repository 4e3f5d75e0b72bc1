package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand changes an order's mutable header fields: title,
// comment and assigned manager. Nil fields are left untouched.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	title     *string
	comment   *string
	managerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update order header fields.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	title *string,
	comment *string,
	managerID *kernel.UUID,
) (UpdateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if managerID != nil {
		if err := managerID.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	return UpdateOrderCommand{
		orderID:   orderID,
		title:     title,
		comment:   comment,
		managerID: managerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to update.
func (c UpdateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Title returns the new title, or nil to keep the current one.
func (c UpdateOrderCommand) Title() *string { return c.title }

// Comment returns the new comment, or nil to keep the current one.
func (c UpdateOrderCommand) Comment() *string { return c.comment }

// ManagerID returns the new manager, or nil to keep the current one.
func (c UpdateOrderCommand) ManagerID() *kernel.UUID { return c.managerID }
