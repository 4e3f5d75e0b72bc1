// Package stockrepo provides data transfer objects and mapping functions for
// catalog and warehouse persistence: products, offers, batches and the batch
// transactions tied to owning entities.
package stockrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
)

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"type:text;index"`
	Title       string          `gorm:"type:text"`
	VAT         decimal.Decimal `gorm:"type:numeric(5,2)"`
	GTDRequired bool
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// OfferDTO represents the database structure for priced product listings.
type OfferDTO struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID                uuid.UUID       `gorm:"type:uuid;index"`
	PriceForTransportPackage decimal.Decimal `gorm:"type:numeric(12,2)"`
	ExpiredAt                time.Time
}

// TableName specifies the database table name for offer entities.
func (OfferDTO) TableName() string {
	return "offers"
}

// BatchDTO represents the database structure for tracked product lots.
type BatchDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;index"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	StorageID      uuid.UUID `gorm:"type:uuid;index"`

	Amount        decimal.Decimal `gorm:"type:numeric(12,3)"`
	EstimatePrice decimal.Decimal `gorm:"type:numeric(12,2)"`

	ProductCreatedAt *time.Time
	ProductExpiredAt *time.Time

	GTDCode *string `gorm:"type:text"`
	Status  string  `gorm:"type:text;index"`
}

// TableName specifies the database table name for batch entities.
func (BatchDTO) TableName() string {
	return "batches"
}

// BatchTransactionDTO represents the database structure for stock movements
// attached to owning entities through a tagged reference.
type BatchTransactionDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BatchID   uuid.UUID       `gorm:"type:uuid;index"`
	OwnerKind string          `gorm:"type:text;index:idx_batch_transactions_owner"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;index:idx_batch_transactions_owner"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,3)"`
}

// TableName specifies the database table name for batch transactions.
func (BatchTransactionDTO) TableName() string {
	return "batch_transactions"
}

func productToDomain(dto ProductDTO) (*stock.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &stock.Product{
		ID:          id,
		Code:        dto.Code,
		Title:       dto.Title,
		VAT:         dto.VAT,
		GTDRequired: dto.GTDRequired,
	}, nil
}

func offerToDomain(dto OfferDTO) (*stock.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return &stock.Offer{
		ID:                       id,
		ProductID:                productID,
		PriceForTransportPackage: dto.PriceForTransportPackage,
		ExpiredAt:                dto.ExpiredAt,
	}, nil
}

func batchFromDomain(b *stock.Batch) BatchDTO {
	return BatchDTO{
		ID:               b.ID().Bytes(),
		ProductID:        b.ProductID().Bytes(),
		OrganizationID:   b.OrganizationID().Bytes(),
		StorageID:        b.StorageID().Bytes(),
		Amount:           b.Amount(),
		EstimatePrice:    b.EstimatePrice(),
		ProductCreatedAt: b.ProductCreatedAt(),
		ProductExpiredAt: b.ProductExpiredAt(),
		GTDCode:          b.GTDCode(),
		Status:           b.Status().String(),
	}
}

func transactionFromDomain(t *stock.BatchTransaction) BatchTransactionDTO {
	return BatchTransactionDTO{
		ID:        t.ID().Bytes(),
		BatchID:   t.BatchID().Bytes(),
		OwnerKind: string(t.OwnerKind()),
		OwnerID:   t.OwnerID().Bytes(),
		Amount:    t.Amount(),
	}
}

func transactionToDomain(dto BatchTransactionDTO) (*stock.BatchTransaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	batchID, err := kernel.UUIDFromBytes(dto.BatchID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return stock.NewBatchTransaction(id, batchID, stock.OwnerKind(dto.OwnerKind), ownerID, dto.Amount)
}
