package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validGTDCode = "10702030/261219/0123456"

func addBatchCommand(t *testing.T, productID kernel.UUID, gtdCode *string) commands.AddBatchCommand {
	t.Helper()
	cmd, err := commands.NewAddBatchCommand(
		productID, kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(100), decimal.NewFromInt(250),
		nil, nil, gtdCode,
	)
	require.NoError(t, err)
	return cmd
}

func TestNewAddBatchCommand_GTDCodeShape(t *testing.T) {
	testCases := []struct {
		name  string
		code  string
		valid bool
	}{
		{"valid code", "10702030/261219/0123456", true},
		{"too short serial", "10702030/261219/012345", false},
		{"missing separators", "107020302612190123456", false},
		{"letters", "1070203A/261219/0123456", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewAddBatchCommand(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				decimal.NewFromInt(1), decimal.Zero, nil, nil, &tc.code,
			)

			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			}
		})
	}
}

func TestAddBatchCommandHandler_Handle_ImportedProduct(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	gtdCode := validGTDCode
	cmd := addBatchCommand(t, productID, &gtdCode)

	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("GetProduct", mock.Anything, productID).Return(&stock.Product{
			ID:          productID,
			GTDRequired: true,
		}, nil).Once(),
		stockRepo.On("AddBatch", mock.Anything, mock.AnythingOfType("*stock.Batch")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	stockRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAddBatchCommandHandler_Handle_MissingGTDForImportedProduct(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd := addBatchCommand(t, productID, nil)

	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("GetProduct", mock.Anything, productID).Return(&stock.Product{
			ID:          productID,
			GTDRequired: true,
		}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	stockRepo.AssertNotCalled(t, "AddBatch", mock.Anything, mock.Anything)
}

func TestAddBatchCommandHandler_Handle_GTDForDomesticProduct(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	gtdCode := validGTDCode
	cmd := addBatchCommand(t, productID, &gtdCode)

	stockRepo := new(MockStockRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockRepository").Return(stockRepo).Once(),
		stockRepo.On("GetProduct", mock.Anything, productID).Return(&stock.Product{
			ID:          productID,
			GTDRequired: false,
		}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddBatchCommandHandler(factory)
	err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	stockRepo.AssertNotCalled(t, "AddBatch", mock.Anything, mock.Anything)
}
