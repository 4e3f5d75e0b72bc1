package stockrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
	"ordering/internal/pkg/errs"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB, tracker aggregateTracker) *GormStockRepository {
	return &GormStockRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetProduct retrieves a product by ID.
func (r *GormStockRepository) GetProduct(ctx context.Context, id kernel.UUID) (*stock.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return productToDomain(dto)
}

// GetOffer retrieves an offer by ID.
func (r *GormStockRepository) GetOffer(ctx context.Context, id kernel.UUID) (*stock.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return offerToDomain(dto)
}

// AddBatch saves a new batch to the database.
func (r *GormStockRepository) AddBatch(ctx context.Context, b *stock.Batch) error {
	if err := b.Validate(); err != nil {
		return err
	}

	dto := batchFromDomain(b)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(b.ID(), b)
	return nil
}

// GormTransactionRepository implements TransactionRepository using GORM.
type GormTransactionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormTransactionRepository creates a new GORM batch transaction repository.
func NewGormTransactionRepository(db *gorm.DB, tracker aggregateTracker) *GormTransactionRepository {
	return &GormTransactionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new batch transaction to the database.
func (r *GormTransactionRepository) Add(ctx context.Context, t *stock.BatchTransaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(t)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(t.ID(), t)
	return nil
}

// GetByOwner retrieves every transaction tied to the owning entity.
func (r *GormTransactionRepository) GetByOwner(
	ctx context.Context,
	kind stock.OwnerKind,
	ownerID kernel.UUID,
) ([]*stock.BatchTransaction, error) {
	if err := errors.Join(kind.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	var dtos []BatchTransactionDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "owner_kind = ? AND owner_id = ?", string(kind), ownerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*stock.BatchTransaction, 0, len(dtos))
	for _, dto := range dtos {
		t, toErr := transactionToDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		transactions = append(transactions, t)
	}

	return transactions, nil
}

// DeleteByOwner deletes every transaction tied to the owning entity.
func (r *GormTransactionRepository) DeleteByOwner(
	ctx context.Context,
	kind stock.OwnerKind,
	ownerID kernel.UUID,
) error {
	if err := errors.Join(kind.Validate(), ownerID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", string(kind), ownerID.Bytes()).
		Delete(&BatchTransactionDTO{}).Error
}
