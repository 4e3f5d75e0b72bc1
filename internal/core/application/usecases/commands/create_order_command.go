package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrganizationTitleIsRequired = errors.New("organization title is required")
)

// CreateOrderCommand represents a client's request to open a new draft order
// for their organization. The manager assignment is optional.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	organizationID    kernel.UUID
	organizationTitle string
	managerID         *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new draft order.
// Validates identifiers and requires the organization title.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	organizationID kernel.UUID,
	organizationTitle string,
	managerID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrganization(organizationID, organizationTitle),
		cmd.setManagerID(managerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrganizationID returns the owning organization's identifier.
func (c CreateOrderCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// OrganizationTitle returns the owning organization's display title.
func (c CreateOrderCommand) OrganizationTitle() string {
	return c.organizationTitle
}

// ManagerID returns the optional assigned manager's identifier.
func (c CreateOrderCommand) ManagerID() *kernel.UUID {
	return c.managerID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrganization(organizationID kernel.UUID, title string) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}
	if title == "" {
		return ErrOrganizationTitleIsRequired
	}
	c.organizationID = organizationID
	c.organizationTitle = title
	return nil
}

func (c *CreateOrderCommand) setManagerID(managerID *kernel.UUID) error {
	if managerID != nil {
		if err := managerID.Validate(); err != nil {
			return err
		}
	}
	c.managerID = managerID
	return nil
}
