// Package stock provides the catalog and warehouse entities the ordering
// domain depends on: sellable offers, their products, tracked batches with
// customs metadata, and the financial transactions that tie batch movements
// to orders.
package stock

import (
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry referenced by offers and batches.
type Product struct {
	ID    kernel.UUID
	Code  string
	Title string

	// VAT is the product's VAT rate in percent.
	VAT decimal.Decimal

	// GTDRequired reports whether the product's origin country requires a
	// customs declaration code on every batch.
	GTDRequired bool
}

// Offer is a priced, stocked product listing that order items reference.
type Offer struct {
	ID        kernel.UUID
	ProductID kernel.UUID

	// PriceForTransportPackage is the unit price per transport package,
	// the price quoted in exported documents.
	PriceForTransportPackage decimal.Decimal

	// ExpiredAt is when the offer stops being sellable.
	ExpiredAt time.Time
}
