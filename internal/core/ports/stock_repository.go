package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
)

// StockRepository defines the persistence contract for catalog and warehouse
// entities: products, offers and batches.
type StockRepository interface {
	// GetProduct retrieves a product by its unique identifier.
	GetProduct(ctx context.Context, id kernel.UUID) (*stock.Product, error)

	// GetOffer retrieves an offer by its unique identifier.
	GetOffer(ctx context.Context, id kernel.UUID) (*stock.Offer, error)

	// AddBatch persists a new batch.
	AddBatch(ctx context.Context, b *stock.Batch) error
}

// TransactionRepository defines the persistence contract for batch
// transactions attached to owning entities through a tagged reference.
type TransactionRepository interface {
	// Add persists a new batch transaction.
	Add(ctx context.Context, t *stock.BatchTransaction) error

	// GetByOwner retrieves every transaction tied to the owning entity.
	GetByOwner(ctx context.Context, kind stock.OwnerKind, ownerID kernel.UUID) ([]*stock.BatchTransaction, error)

	// DeleteByOwner deletes every transaction tied to the owning entity.
	DeleteByOwner(ctx context.Context, kind stock.OwnerKind, ownerID kernel.UUID) error
}
