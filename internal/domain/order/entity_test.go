//go:build unit

package order_test

import (
	"strings"
	"testing"

	"storefront/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("basic success case", func(t *testing.T) {
		o, err := order.NewOrder(userID, "  123 Main St  ", " leave at door ")
		require.NoError(t, err)
		require.NotNil(t, o)

		assert.Equal(t, userID, o.UserID())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, "123 Main St", o.ShippingAddress())
		assert.Equal(t, "leave at door", o.Observations())
		assert.Empty(t, o.Lines())
		assert.True(t, o.TotalAmount().IsZero())
	})

	t.Run("blank shipping address is allowed", func(t *testing.T) {
		o, err := order.NewOrder(userID, "   ", "")
		require.NoError(t, err)
		assert.Equal(t, "", o.ShippingAddress())
	})

	t.Run("shipping address at maximum length", func(t *testing.T) {
		_, err := order.NewOrder(userID, strings.Repeat("a", order.MaxShippingAddressLength), "")
		assert.NoError(t, err)
	})

	t.Run("shipping address too long", func(t *testing.T) {
		_, err := order.NewOrder(userID, strings.Repeat("a", order.MaxShippingAddressLength+1), "")
		assert.ErrorIs(t, err, order.ErrShippingAddressTooLong)
	})
}

func TestOrderAddLine(t *testing.T) {
	newOrder := func(t *testing.T) *order.Order {
		t.Helper()
		o, err := order.NewOrder(uuid.New(), "123 Main St", "")
		require.NoError(t, err)
		return o
	}

	t.Run("accumulates lines and total", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.AddLine(1, "Mate cup", 2, decimal.RequireFromString("1500.50")))
		require.NoError(t, o.AddLine(2, "Thermos", 1, decimal.RequireFromString("8000.00")))

		require.Len(t, o.Lines(), 2)
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("11001.00")),
			"expected 11001.00, got %s", o.TotalAmount())
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		o := newOrder(t)
		err := o.AddLine(1, "Mate cup", 0, decimal.RequireFromString("10.00"))
		assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		o := newOrder(t)
		err := o.AddLine(1, "Mate cup", 1, decimal.RequireFromString("-0.01"))
		assert.ErrorIs(t, err, order.ErrNegativeUnitPrice)
	})

	t.Run("total is exact across many small lines", func(t *testing.T) {
		o := newOrder(t)
		for i := int64(1); i <= 10; i++ {
			require.NoError(t, o.AddLine(i, "Sticker", 3, decimal.RequireFromString("0.10")))
		}
		assert.True(t, o.TotalAmount().Equal(decimal.RequireFromString("3.00")),
			"expected 3.00, got %s", o.TotalAmount())
	})
}

func TestOrderSetPayment(t *testing.T) {
	o, err := order.NewOrder(uuid.New(), "123 Main St", "")
	require.NoError(t, err)

	o.SetPayment("mercadopago", "pref-123")
	assert.Equal(t, "mercadopago", o.PaymentProvider())
	assert.Equal(t, "pref-123", o.PaymentReference())
}
