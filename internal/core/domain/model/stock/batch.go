package stock

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not
	// created through NewBatch or RestoreBatch.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch constructor")
)

// BatchStatus represents the warehouse state of a batch.
type BatchStatus int

const (
	// BatchUnknown represents an invalid or undefined status.
	BatchUnknown BatchStatus = iota

	// BatchActive means the batch is available for reservation.
	BatchActive

	// BatchSpent means the batch has been fully consumed by orders.
	BatchSpent

	// BatchWrittenOff means the batch was removed from circulation.
	BatchWrittenOff
)

func getBatchStatusStrings() map[BatchStatus]string {
	return map[BatchStatus]string{
		BatchUnknown:    "UNKNOWN",
		BatchActive:     "ACTIVE",
		BatchSpent:      "SPENT",
		BatchWrittenOff: "WRITTEN_OFF",
	}
}

// String returns the wire name of the batch status.
func (s BatchStatus) String() string {
	if str, ok := getBatchStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Batch is a tracked physical lot of product with its own import metadata.
// Imported products carry a GTD customs declaration code; domestically
// produced ones must not.
type Batch struct {
	id             kernel.UUID
	productID      kernel.UUID
	organizationID kernel.UUID
	storageID      kernel.UUID

	amount        decimal.Decimal
	estimatePrice decimal.Decimal

	productCreatedAt *time.Time
	productExpiredAt *time.Time

	gtdCode *string
	status  BatchStatus

	isConstructed bool
}

// NewBatch creates a batch in Active status. GTD code consistency against
// the product's import flag is validated at the intake boundary, not here.
func NewBatch(
	id kernel.UUID,
	productID kernel.UUID,
	organizationID kernel.UUID,
	storageID kernel.UUID,
	amount decimal.Decimal,
	estimatePrice decimal.Decimal,
	productCreatedAt *time.Time,
	productExpiredAt *time.Time,
	gtdCode *string,
) (*Batch, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		organizationID.Validate(),
		storageID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Batch{
		id:               id,
		productID:        productID,
		organizationID:   organizationID,
		storageID:        storageID,
		amount:           amount,
		estimatePrice:    estimatePrice,
		productCreatedAt: productCreatedAt,
		productExpiredAt: productExpiredAt,
		gtdCode:          gtdCode,
		status:           BatchActive,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Batch instance was properly constructed.
func (b *Batch) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID { return b.id }

// ProductID returns the identifier of the batched product.
func (b *Batch) ProductID() kernel.UUID { return b.productID }

// OrganizationID returns the identifier of the owning organization.
func (b *Batch) OrganizationID() kernel.UUID { return b.organizationID }

// StorageID returns the identifier of the storage holding the batch.
func (b *Batch) StorageID() kernel.UUID { return b.storageID }

// Amount returns the batched quantity.
func (b *Batch) Amount() decimal.Decimal { return b.amount }

// EstimatePrice returns the estimated unit price of the batch.
func (b *Batch) EstimatePrice() decimal.Decimal { return b.estimatePrice }

// ProductCreatedAt returns the production date, if known.
func (b *Batch) ProductCreatedAt() *time.Time { return b.productCreatedAt }

// ProductExpiredAt returns the product expiry date, if known.
func (b *Batch) ProductExpiredAt() *time.Time { return b.productExpiredAt }

// GTDCode returns the customs declaration code, or nil for domestic product.
func (b *Batch) GTDCode() *string { return b.gtdCode }

// Status returns the warehouse state of the batch.
func (b *Batch) Status() BatchStatus { return b.status }
