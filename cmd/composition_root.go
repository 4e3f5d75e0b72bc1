package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"ordering/internal/adapters/out/excel"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	dispatcher ports.EventDispatcher
	exporter   ports.OrderExporter
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	dispatcher ports.EventDispatcher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: dispatcher,
		exporter:   excel.NewExporter(config.BaseURL),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateReserveOrderCommandHandler() commands.ReserveOrderCommandHandler {
	return commands.NewReserveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUnreserveOrderCommandHandler() commands.UnreserveOrderCommandHandler {
	return commands.NewUnreserveOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateMarkOrderPaidCommandHandler() commands.MarkOrderPaidCommandHandler {
	return commands.NewMarkOrderPaidCommandHandler(c.fulfillmentUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateGenerateDeliveriesCommandHandler() commands.GenerateDeliveriesCommandHandler {
	return commands.NewGenerateDeliveriesCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateUpsertOrderItemCommandHandler() commands.UpsertOrderItemCommandHandler {
	return commands.NewUpsertOrderItemCommandHandler(c.orderStockUoWFactory())
}

func (c *CompositionRoot) CreateAddBatchCommandHandler() commands.AddBatchCommandHandler {
	return commands.NewAddBatchCommandHandler(c.stockUoWFactory())
}

func (c *CompositionRoot) CreateReleaseExpiredReservationsCommandHandler() commands.ReleaseExpiredReservationsCommandHandler {
	return commands.NewReleaseExpiredReservationsCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateExportDraftOrderQueryHandler() queries.ExportDraftOrderQueryHandler {
	return queries.NewExportDraftOrderQueryHandler(c.gormDB, c.exporter)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderStockUoWFactory() commands.OrderStockUoWFactory {
	return FuncOrderStockUoWFactory(func() commands.OrderStockUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.FulfillmentUoWFactory {
	return FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stockUoWFactory() commands.StockUoWFactory {
	return FuncStockUoWFactory(func() commands.StockUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderStockUoWFactory func() commands.OrderStockUoW

func (f FuncOrderStockUoWFactory) Create() commands.OrderStockUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncStockUoWFactory func() commands.StockUoW

func (f FuncStockUoWFactory) Create() commands.StockUoW {
	return f()
}
