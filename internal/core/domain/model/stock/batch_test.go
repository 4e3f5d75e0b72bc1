package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/stock"
)

func TestNewBatch(t *testing.T) {
	t.Run("should create active batch", func(t *testing.T) {
		id := kernel.NewUUID()
		gtdCode := "10702030/261219/0123456"
		expiredAt := time.Now().AddDate(0, 1, 0)

		b, err := stock.NewBatch(
			id, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			decimal.NewFromInt(100), decimal.NewFromInt(250),
			nil, &expiredAt, &gtdCode,
		)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.True(t, b.ID().IsEqual(id))
		assert.Equal(t, stock.BatchActive, b.Status())
		require.NotNil(t, b.GTDCode())
		assert.Equal(t, gtdCode, *b.GTDCode())
		assert.Nil(t, b.ProductCreatedAt())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		b, err := stock.NewBatch(
			invalidID, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			decimal.NewFromInt(1), decimal.Zero, nil, nil, nil,
		)

		require.Error(t, err)
		assert.Nil(t, b)
	})
}

func TestNewBatchTransaction(t *testing.T) {
	t.Run("should create transaction for an order", func(t *testing.T) {
		orderID := kernel.NewUUID()

		tx, err := stock.NewBatchTransaction(
			kernel.NewUUID(), kernel.NewUUID(), stock.OwnerOrder, orderID,
			decimal.NewFromInt(5),
		)

		require.NoError(t, err)
		require.NoError(t, tx.Validate())
		assert.Equal(t, stock.OwnerOrder, tx.OwnerKind())
		assert.True(t, tx.OwnerID().IsEqual(orderID))
	})

	t.Run("should reject unknown owner kind", func(t *testing.T) {
		tx, err := stock.NewBatchTransaction(
			kernel.NewUUID(), kernel.NewUUID(), stock.OwnerKind("invoice"), kernel.NewUUID(),
			decimal.NewFromInt(5),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, stock.ErrOwnerKindIsInvalid)
		assert.Nil(t, tx)
	})
}

func TestOwnerKindValidate(t *testing.T) {
	require.NoError(t, stock.OwnerOrder.Validate())
	require.NoError(t, stock.OwnerDelivery.Validate())
	require.Error(t, stock.OwnerKind("").Validate())
}
