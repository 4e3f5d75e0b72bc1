package commands

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

// UpsertOrderItemCommandHandler adds or changes an order line item. New items
// default their price from the offer and their vat rate from the product.
// The save hook on the aggregate keeps derived fields and the dereservation
// timer consistent.
type UpsertOrderItemCommandHandler struct {
	uowFactory OrderStockUoWFactory
}

// NewUpsertOrderItemCommandHandler creates a handler for item upserts.
func NewUpsertOrderItemCommandHandler(uowFactory OrderStockUoWFactory) UpsertOrderItemCommandHandler {
	return UpsertOrderItemCommandHandler{uowFactory: uowFactory}
}

// Handle processes the item upsert command.
func (h *UpsertOrderItemCommandHandler) Handle(ctx context.Context, cmd UpsertOrderItemCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var item *order.OrderItem
	if cmd.ItemID() != nil {
		item = aggregate.ItemByID(*cmd.ItemID())
		if item == nil {
			return errs.NewObjectNotFoundError("item_id", cmd.ItemID().String())
		}
		if err = item.ChangeAmount(cmd.Amount()); err != nil {
			return err
		}
		if cmd.Price() != nil {
			if err = item.ChangePrice(*cmd.Price()); err != nil {
				return err
			}
		}
		if cmd.VAT() != nil {
			if err = item.ChangeVAT(*cmd.VAT()); err != nil {
				return err
			}
		}
	} else {
		price, vat, defaultsErr := h.resolveDefaults(ctx, uow, cmd)
		if defaultsErr != nil {
			return defaultsErr
		}
		item, err = order.NewOrderItem(
			kernel.NewUUID(),
			aggregate.ID(),
			cmd.OfferID(),
			cmd.PackageID(),
			cmd.Amount(),
			price,
			vat,
		)
		if err != nil {
			return err
		}
	}

	if err = aggregate.PutItem(item, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// resolveDefaults fills the price from the offer and the vat rate from the
// offer's product when the command leaves them unset.
func (h *UpsertOrderItemCommandHandler) resolveDefaults(
	ctx context.Context,
	uow OrderStockUoW,
	cmd UpsertOrderItemCommand,
) (decimal.Decimal, decimal.Decimal, error) {
	if cmd.Price() != nil && cmd.VAT() != nil {
		return *cmd.Price(), *cmd.VAT(), nil
	}

	stockRepo := uow.StockRepository()
	offer, err := stockRepo.GetOffer(ctx, cmd.OfferID())
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	price := offer.PriceForTransportPackage
	if cmd.Price() != nil {
		price = *cmd.Price()
	}

	if cmd.VAT() != nil {
		return price, *cmd.VAT(), nil
	}

	product, err := stockRepo.GetProduct(ctx, offer.ProductID)
	if err != nil {
		return decimal.Decimal{}, decimal.Decimal{}, err
	}

	return price, product.VAT, nil
}
