package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/stock"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestUpsertOrderItemCommandHandler_Handle_NewItemWithDefaults(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	offerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	aggregate := restoredOrder(t, orderID, order.Draft, nil)

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, nil, offerID, nil, decimal.NewFromInt(3), nil, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("GetOffer", mock.Anything, offerID).Return(&stock.Offer{
			ID:                       offerID,
			ProductID:                productID,
			PriceForTransportPackage: decimal.NewFromInt(120),
			ExpiredAt:                time.Now().AddDate(0, 1, 0),
		}, nil).Once(),
		stockRepo.On("GetProduct", mock.Anything, productID).Return(&stock.Product{
			ID:  productID,
			VAT: decimal.NewFromInt(20),
		}, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, aggregate.Items(), 1)
	item := aggregate.Items()[0]
	assert.True(t, item.Price().Equal(decimal.NewFromInt(120)), "price is %s", item.Price())
	assert.True(t, item.VAT().Equal(decimal.NewFromInt(20)), "vat is %s", item.VAT())
	assert.True(t, item.Sum().Equal(decimal.NewFromInt(360)), "sum is %s", item.Sum())
	orderRepo.AssertExpectations(t)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpsertOrderItemCommandHandler_Handle_NewItemWithExplicitPriceAndVAT(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	offerID := kernel.NewUUID()
	aggregate := restoredOrder(t, orderID, order.Draft, nil)

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, nil, offerID, nil, decimal.NewFromInt(2),
		decimalPtr(decimal.NewFromInt(99)), decimalPtr(decimal.NewFromInt(10)),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, aggregate.Items(), 1)
	// No stock lookups: the command carried both price and vat.
	assert.True(t, aggregate.Items()[0].Price().Equal(decimal.NewFromInt(99)))
	uow.AssertNotCalled(t, "StockRepository")
}

func TestUpsertOrderItemCommandHandler_Handle_ChangeExistingItem(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	offerID := kernel.NewUUID()

	item, err := order.RestoreOrderItem(
		itemID, orderID, offerID, nil,
		decimal.NewFromInt(2), decimal.NewFromInt(100), decimal.NewFromInt(20),
		decimal.NewFromInt(200), decimal.RequireFromString("33.3333"), order.ItemNew,
	)
	require.NoError(t, err)
	aggregate, err := order.RestoreOrder(
		orderID, kernel.NewUUID(), "Restaurant Pushkin", nil,
		"", "", order.Draft, nil, nil, time.Now(), []*order.OrderItem{item}, nil,
	)
	require.NoError(t, err)

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, &itemID, offerID, nil, decimal.NewFromInt(5), nil, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, item.Amount().Equal(decimal.NewFromInt(5)))
	// Price did not change, so the stored sum survives.
	assert.True(t, item.Sum().Equal(decimal.NewFromInt(200)))
	assert.Len(t, aggregate.Items(), 1)
}

func TestUpsertOrderItemCommandHandler_Handle_ItemNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	itemID := kernel.NewUUID()
	aggregate := restoredOrder(t, orderID, order.Draft, nil)

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, &itemID, kernel.NewUUID(), nil, decimal.NewFromInt(1), nil, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpsertOrderItemCommandHandler_Handle_NonEditableOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	aggregate := restoredOrder(t, orderID, order.Confirmed, nil)

	cmd, err := commands.NewUpsertOrderItemCommand(
		orderID, nil, kernel.NewUUID(), nil, decimal.NewFromInt(1),
		decimalPtr(decimal.NewFromInt(10)), decimalPtr(decimal.NewFromInt(20)),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertOrderItemCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrOrderIsNotEditable)
}
