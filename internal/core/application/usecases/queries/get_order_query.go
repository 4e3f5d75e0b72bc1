// Package queries contains read operations that bypass the domain model and
// query the database directly, the read side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its items and the annotated
// order total.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve an order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the read model of a single order: header fields,
// line items and the total derived from them.
type GetOrderQueryResponse struct {
	ID                kernel.UUID
	OrganizationID    kernel.UUID
	OrganizationTitle string
	Title             string
	Comment           string
	Status            string
	StatusUpdatedAt   *time.Time
	DereservationAt   *time.Time
	CreatedAt         time.Time

	Total decimal.Decimal
	Items []GetOrderQueryItem
}

// GetOrderQueryItem is the read model of a single order line.
type GetOrderQueryItem struct {
	ID      kernel.UUID
	OfferID kernel.UUID
	Amount  decimal.Decimal
	Price   decimal.Decimal
	VAT     decimal.Decimal
	Sum     decimal.Decimal
	VATSum  decimal.Decimal
	Status  string
}
