package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrExportDraftOrderQueryIsNotConstructed = errors.New(
	"ExportDraftOrderQuery must be created via NewExportDraftOrderQuery constructor",
)

// ExportDraftOrderQuery renders an order into the draft order spreadsheet:
// header, one row per item joined with its offer and product, per-line VAT
// and the grand totals.
type ExportDraftOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewExportDraftOrderQuery creates a query to export an order.
func NewExportDraftOrderQuery(orderID kernel.UUID) (ExportDraftOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ExportDraftOrderQuery{}, err
	}

	return ExportDraftOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ExportDraftOrderQuery) Validate() error {
	return q.guard.Validate(ErrExportDraftOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to export.
func (q ExportDraftOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ExportDraftOrderQueryResponse carries the rendered spreadsheet and the
// filename it should be served under.
type ExportDraftOrderQueryResponse struct {
	FileName string
	Content  []byte
}
