package commands

import (
	"errors"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrUpsertOrderItemCommandIsNotConstructed = errors.New(
	"UpsertOrderItemCommand must be created via NewUpsertOrderItemCommand constructor",
)

// UpsertOrderItemCommand adds a line item to an order or changes an existing
// one. Price and vat are optional: when omitted on a new item they default
// from the referenced offer and its product.
type UpsertOrderItemCommand struct {
	orderID   kernel.UUID
	itemID    *kernel.UUID
	offerID   kernel.UUID
	packageID *kernel.UUID

	amount decimal.Decimal
	price  *decimal.Decimal
	vat    *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewUpsertOrderItemCommand creates a command to add or change an order item.
// A nil itemID means a new item.
func NewUpsertOrderItemCommand(
	orderID kernel.UUID,
	itemID *kernel.UUID,
	offerID kernel.UUID,
	packageID *kernel.UUID,
	amount decimal.Decimal,
	price *decimal.Decimal,
	vat *decimal.Decimal,
) (UpsertOrderItemCommand, error) {
	if err := errors.Join(orderID.Validate(), offerID.Validate()); err != nil {
		return UpsertOrderItemCommand{}, err
	}
	if itemID != nil {
		if err := itemID.Validate(); err != nil {
			return UpsertOrderItemCommand{}, err
		}
	}
	if packageID != nil {
		if err := packageID.Validate(); err != nil {
			return UpsertOrderItemCommand{}, err
		}
	}

	return UpsertOrderItemCommand{
		orderID:   orderID,
		itemID:    itemID,
		offerID:   offerID,
		packageID: packageID,
		amount:    amount,
		price:     price,
		vat:       vat,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrUpsertOrderItemCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c UpsertOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the identifier of the item to change, or nil for a new item.
func (c UpsertOrderItemCommand) ItemID() *kernel.UUID {
	return c.itemID
}

// OfferID returns the identifier of the priced offer the item references.
func (c UpsertOrderItemCommand) OfferID() kernel.UUID {
	return c.offerID
}

// PackageID returns the optional product package reference.
func (c UpsertOrderItemCommand) PackageID() *kernel.UUID {
	return c.packageID
}

// Amount returns the requested quantity.
func (c UpsertOrderItemCommand) Amount() decimal.Decimal {
	return c.amount
}

// Price returns the explicit unit price, or nil to default from the offer.
func (c UpsertOrderItemCommand) Price() *decimal.Decimal {
	return c.price
}

// VAT returns the explicit vat rate, or nil to default from the product.
func (c UpsertOrderItemCommand) VAT() *decimal.Decimal {
	return c.vat
}
