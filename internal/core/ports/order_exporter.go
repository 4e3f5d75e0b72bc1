package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExportOrder carries the order header fields the exporter renders.
type ExportOrder struct {
	ID                string
	CreatedAt         time.Time
	OrganizationTitle string
}

// ExportItem is one order item joined with its offer and product data, in
// the row shape the exporter renders.
type ExportItem struct {
	ProductCode  string
	ProductTitle string

	// ProductVAT is the product's VAT rate in percent, embedded twice in the
	// documented per-line VAT formula.
	ProductVAT decimal.Decimal

	Amount decimal.Decimal

	// TransportPackagePrice is the offer's unit price per transport package.
	TransportPackagePrice decimal.Decimal

	OfferExpiredAt time.Time
}

// OrderExporter renders an order and its items into a spreadsheet document.
// The rendering is deterministic: the same order, item set and template
// yield byte-identical output.
type OrderExporter interface {
	ExportDraftOrder(o ExportOrder, items []ExportItem) ([]byte, error)
}
