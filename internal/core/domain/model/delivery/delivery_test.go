package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
)

func TestNewDelivery(t *testing.T) {
	t.Run("should create planned delivery", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()

		d, err := delivery.NewDelivery(id, orderID)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.True(t, d.OrderID().IsEqual(orderID))
		assert.Equal(t, delivery.Planned, d.Status())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		d, err := delivery.NewDelivery(invalidID, kernel.NewUUID())

		require.Error(t, err)
		assert.Nil(t, d)
	})
}

func TestMarkPaid(t *testing.T) {
	testCases := []struct {
		name    string
		status  delivery.Status
		allowed bool
	}{
		{"planned", delivery.Planned, true},
		{"shipped", delivery.Shipped, true},
		{"received", delivery.Fact, true},
		{"already paid", delivery.Paid, true},
		{"canceled", delivery.Canceled, false},
		{"deleted", delivery.Deleted, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), tc.status)
			require.NoError(t, err)

			err = d.MarkPaid()

			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, delivery.Paid, d.Status())
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.status, d.Status())
			}
		})
	}
}

func TestMarkCanceledAndDeleted(t *testing.T) {
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	d.MarkCanceled()
	assert.Equal(t, delivery.Canceled, d.Status())

	d.MarkDeleted()
	assert.Equal(t, delivery.Deleted, d.Status())
}

func TestBlocksOrderCancel(t *testing.T) {
	blocking := map[delivery.Status]bool{
		delivery.Planned:  false,
		delivery.Shipped:  true,
		delivery.Fact:     true,
		delivery.Paid:     false,
		delivery.Canceled: false,
		delivery.Deleted:  false,
	}

	for status, want := range blocking {
		assert.Equal(t, want, status.BlocksOrderCancel(), "status %s", status)
	}
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []delivery.Status{
		delivery.Planned, delivery.Shipped, delivery.Fact,
		delivery.Paid, delivery.Canceled, delivery.Deleted,
	} {
		parsed, err := delivery.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := delivery.StatusFromString("UNKNOWN")
	require.Error(t, err)
}
