// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// TransactionRepoFactory provides access to the batch transaction repository within a transaction.
	TransactionRepoFactory interface {
		TransactionRepository() ports.TransactionRepository
	}

	// StockRepoFactory provides access to the stock repository within a transaction.
	StockRepoFactory interface {
		StockRepository() ports.StockRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by commands that touch nothing beyond the order aggregate.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderStockUoW manages transactions for operations that change the
	// order aggregate while reading catalog data, such as adding an item
	// priced from its offer.
	OrderStockUoW interface {
		TxManager
		OrderRepoFactory
		StockRepoFactory
	}

	// OrderStockUoWFactory creates new order-plus-stock unit of work instances.
	OrderStockUoWFactory interface {
		Create() OrderStockUoW
	}

	// FulfillmentUoW manages transactions that coordinate the order with its
	// dependent delivery and financial transaction records: paying,
	// canceling, deleting, and generating deliveries.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		TransactionRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// StockUoW manages transactions for warehouse intake operations.
	StockUoW interface {
		TxManager
		StockRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}
)
