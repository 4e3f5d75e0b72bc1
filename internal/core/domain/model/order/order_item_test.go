package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

func newItem(t *testing.T, amount, price, vat string) *order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		decimal.RequireFromString(amount),
		decimal.RequireFromString(price),
		decimal.RequireFromString(vat),
	)
	require.NoError(t, err)
	return item
}

func restoreItem(t *testing.T, amount, price, vat, sum, vatSum string) *order.OrderItem {
	t.Helper()
	item, err := order.RestoreOrderItem(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
		decimal.RequireFromString(amount),
		decimal.RequireFromString(price),
		decimal.RequireFromString(vat),
		decimal.RequireFromString(sum),
		decimal.RequireFromString(vatSum),
		order.ItemNew,
	)
	require.NoError(t, err)
	return item
}

func TestNewOrderItem(t *testing.T) {
	t.Run("should derive sum and vat sum", func(t *testing.T) {
		item := newItem(t, "2", "100", "20")

		assert.True(t, item.Sum().Equal(decimal.NewFromInt(200)), "sum is %s", item.Sum())
		// 200 / 120 * 20 rounded to four places.
		assert.Equal(t, "33.3333", item.VATSum().StringFixed(4))
		assert.True(t, item.IsNew())
		assert.Equal(t, order.ItemNew, item.Status())
	})

	t.Run("should round inputs to their scales", func(t *testing.T) {
		item := newItem(t, "1.2345", "9.999", "20.005")

		assert.Equal(t, "1.235", item.Amount().StringFixed(3))
		assert.Equal(t, "10.00", item.Price().StringFixed(2))
		assert.Equal(t, "20.01", item.VAT().StringFixed(2))
	})

	t.Run("should derive zero vat sum for zero vat", func(t *testing.T) {
		item := newItem(t, "3", "50", "0")

		assert.True(t, item.Sum().Equal(decimal.NewFromInt(150)))
		assert.True(t, item.VATSum().IsZero())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := order.NewOrderItem(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil,
			decimal.NewFromInt(-1), decimal.NewFromInt(100), decimal.NewFromInt(20),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})
}

func TestOrderItem_DirtyTracking(t *testing.T) {
	t.Run("restored item starts clean", func(t *testing.T) {
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		assert.False(t, item.IsNew())
		assert.False(t, item.IsPriceChanged())
		assert.False(t, item.IsVATChanged())
		assert.Empty(t, item.ChangedFields())
	})

	t.Run("changes report exactly the touched fields", func(t *testing.T) {
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangeAmount(decimal.NewFromInt(5)))
		require.NoError(t, item.ChangePrice(decimal.NewFromInt(150)))

		assert.Equal(t, []string{order.FieldAmount, order.FieldPrice}, item.ChangedFields())
		assert.True(t, item.IsPriceChanged())
		assert.False(t, item.IsVATChanged())
	})

	t.Run("setting price back to the loaded value is not a change", func(t *testing.T) {
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangePrice(decimal.NewFromInt(100)))

		assert.False(t, item.IsPriceChanged())
	})
}

func TestOrderItem_DerivedRecomputation(t *testing.T) {
	// The derived fields only follow source fields that actually changed
	// against the loaded snapshot, so a stored sum or vat sum survives
	// unrelated edits. The recomputation runs through PutItem on the owning
	// order.
	draft := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Restaurant Pushkin", nil)
		require.NoError(t, err)
		return o
	}

	t.Run("amount change alone keeps stored sum", func(t *testing.T) {
		o := draft(t)
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangeAmount(decimal.NewFromInt(5)))
		require.NoError(t, o.PutItem(item, o.CreatedAt()))

		assert.Equal(t, "200", item.Sum().String())
		assert.Equal(t, "33.3333", item.VATSum().StringFixed(4))
	})

	t.Run("price change recomputes sum but not vat sum", func(t *testing.T) {
		o := draft(t)
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangePrice(decimal.NewFromInt(200)))
		require.NoError(t, o.PutItem(item, o.CreatedAt()))

		assert.True(t, item.Sum().Equal(decimal.NewFromInt(400)), "sum is %s", item.Sum())
		assert.Equal(t, "33.3333", item.VATSum().StringFixed(4))
		assert.Contains(t, item.ChangedFields(), order.FieldSum)
		assert.NotContains(t, item.ChangedFields(), order.FieldVATSum)
	})

	t.Run("price and vat change recompute both", func(t *testing.T) {
		o := draft(t)
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangePrice(decimal.NewFromInt(200)))
		require.NoError(t, item.ChangeVAT(decimal.NewFromInt(10)))
		require.NoError(t, o.PutItem(item, o.CreatedAt()))

		assert.True(t, item.Sum().Equal(decimal.NewFromInt(400)))
		// 400 / 110 * 10 rounded to four places.
		assert.Equal(t, "36.3636", item.VATSum().StringFixed(4))
	})

	t.Run("vat change alone keeps both derived fields", func(t *testing.T) {
		o := draft(t)
		item := restoreItem(t, "2", "100", "20", "200", "33.3333")

		require.NoError(t, item.ChangeVAT(decimal.NewFromInt(10)))
		require.NoError(t, o.PutItem(item, o.CreatedAt()))

		assert.Equal(t, "200", item.Sum().String())
		assert.Equal(t, "33.3333", item.VATSum().StringFixed(4))
	})
}

func TestItemStatusFromString(t *testing.T) {
	for _, s := range []order.ItemStatus{
		order.ItemNew, order.ItemAccept, order.ItemReject, order.ItemReserve,
	} {
		parsed, err := order.ItemStatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ItemStatusFromString("RESERVED")
	require.Error(t, err)
}
