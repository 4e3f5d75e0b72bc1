package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
	"ordering/internal/pkg/errs"
)

// AddBatchCommandHandler registers a batch at a storage. Whether the batch
// must carry a GTD customs code depends on the product: imported products
// require one, domestically produced ones must not have one.
type AddBatchCommandHandler struct {
	uowFactory StockUoWFactory
}

// NewAddBatchCommandHandler creates a handler for batch intake.
func NewAddBatchCommandHandler(uowFactory StockUoWFactory) AddBatchCommandHandler {
	return AddBatchCommandHandler{uowFactory: uowFactory}
}

// Handle processes the batch intake command.
func (h *AddBatchCommandHandler) Handle(ctx context.Context, cmd AddBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stockRepo := uow.StockRepository()
	product, err := stockRepo.GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return err
	}

	if product.GTDRequired && cmd.GTDCode() == nil {
		return errs.NewValueIsRequiredError("gtd_code")
	}
	if !product.GTDRequired && cmd.GTDCode() != nil {
		return errs.NewValueIsInvalidError("gtd_code is not allowed for domestic product")
	}

	batch, err := stock.NewBatch(
		kernel.NewUUID(),
		cmd.ProductID(),
		cmd.OrganizationID(),
		cmd.StorageID(),
		cmd.Amount(),
		cmd.EstimatePrice(),
		cmd.ProductCreatedAt(),
		cmd.ProductExpiredAt(),
		cmd.GTDCode(),
	)
	if err != nil {
		return err
	}

	if err = stockRepo.AddBatch(ctx, batch); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
