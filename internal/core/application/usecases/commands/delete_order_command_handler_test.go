package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/stock"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle_ReleasesHeldStock(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(orderID)
	aggregate := restoredOrder(t, orderID, order.Reserved, nil)

	held, err := stock.NewBatchTransaction(
		kernel.NewUUID(), kernel.NewUUID(), stock.OwnerOrder, orderID, decimal.NewFromInt(5),
	)
	require.NoError(t, err)
	planned, err := delivery.NewDelivery(kernel.NewUUID(), orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("TransactionRepository").Return(txRepo).Once(),
		txRepo.On("GetByOwner", mock.Anything, stock.OwnerOrder, orderID).
			Return([]*stock.BatchTransaction{held}, nil).Once(),
		txRepo.On("DeleteByOwner", mock.Anything, stock.OwnerOrder, orderID).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrder", mock.Anything, orderID).
			Return([]*delivery.Delivery{planned}, nil).Once(),
		deliveryRepo.On("Update", mock.Anything, planned).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Deleted, aggregate.Status())
	assert.Equal(t, delivery.Deleted, planned.Status())
	orderRepo.AssertExpectations(t)
	txRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_DraftHoldsNoStock(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(orderID)
	aggregate := restoredOrder(t, orderID, order.Draft, nil)

	orderRepo := new(MockOrderRepository)
	txRepo := new(MockTransactionRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("TransactionRepository").Return(txRepo).Once(),
		txRepo.On("GetByOwner", mock.Anything, stock.OwnerOrder, orderID).
			Return([]*stock.BatchTransaction{}, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("GetByOrder", mock.Anything, orderID).
			Return([]*delivery.Delivery{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Deleted, aggregate.Status())
	// No transactions were found, so nothing is released.
	txRepo.AssertNotCalled(t, "DeleteByOwner", mock.Anything, mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	txRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_RejectedFromConfirmed(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteOrderCommand(orderID)
	aggregate := restoredOrder(t, orderID, order.Confirmed, nil)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	assert.Equal(t, order.Confirmed, aggregate.Status())
}
