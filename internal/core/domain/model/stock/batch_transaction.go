package stock

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// ErrBatchTransactionIsNotConstructed is returned when a BatchTransaction
	// was not created through NewBatchTransaction or RestoreBatchTransaction.
	ErrBatchTransactionIsNotConstructed = errors.New(
		"BatchTransaction must be created via NewBatchTransaction constructor",
	)

	// ErrOwnerKindIsInvalid is returned for an owner kind outside the known set.
	ErrOwnerKindIsInvalid = errors.New("owner kind is invalid")
)

// OwnerKind tags the entity a batch transaction is attached to. Transactions
// are attachable to arbitrary entities through an explicit (kind, id) pair
// rather than inheritance.
type OwnerKind string

const (
	// OwnerOrder ties a transaction to an order.
	OwnerOrder OwnerKind = "order"

	// OwnerDelivery ties a transaction to a delivery.
	OwnerDelivery OwnerKind = "delivery"
)

// Validate checks if the owner kind is one of the known tags.
func (k OwnerKind) Validate() error {
	switch k {
	case OwnerOrder, OwnerDelivery:
		return nil
	}
	return ErrOwnerKindIsInvalid
}

// BatchTransaction records a stock movement of a batch on behalf of an
// owning entity. Canceling an order deletes every transaction tied to it.
type BatchTransaction struct {
	id        kernel.UUID
	batchID   kernel.UUID
	ownerKind OwnerKind
	ownerID   kernel.UUID
	amount    decimal.Decimal

	isConstructed bool
}

// NewBatchTransaction creates a stock movement record for an owning entity.
func NewBatchTransaction(
	id kernel.UUID,
	batchID kernel.UUID,
	ownerKind OwnerKind,
	ownerID kernel.UUID,
	amount decimal.Decimal,
) (*BatchTransaction, error) {
	if err := errors.Join(
		id.Validate(),
		batchID.Validate(),
		ownerKind.Validate(),
		ownerID.Validate(),
	); err != nil {
		return nil, err
	}

	return &BatchTransaction{
		id:            id,
		batchID:       batchID,
		ownerKind:     ownerKind,
		ownerID:       ownerID,
		amount:        amount,
		isConstructed: true,
	}, nil
}

// Validate ensures the BatchTransaction instance was properly constructed.
func (t *BatchTransaction) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrBatchTransactionIsNotConstructed
	}
	return nil
}

// ID returns the transaction's unique identifier.
func (t *BatchTransaction) ID() kernel.UUID { return t.id }

// BatchID returns the identifier of the moved batch.
func (t *BatchTransaction) BatchID() kernel.UUID { return t.batchID }

// OwnerKind returns the tag of the owning entity.
func (t *BatchTransaction) OwnerKind() OwnerKind { return t.ownerKind }

// OwnerID returns the identifier of the owning entity.
func (t *BatchTransaction) OwnerID() kernel.UUID { return t.ownerID }

// Amount returns the moved quantity.
func (t *BatchTransaction) Amount() decimal.Decimal { return t.amount }
