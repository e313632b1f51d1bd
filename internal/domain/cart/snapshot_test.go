//go:build unit

package cart_test

import (
	"testing"

	"storefront/internal/domain/cart"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mateLine() cart.Line {
	return cart.Line{
		ProductID: 7,
		Name:      "Mate cup",
		UnitPrice: decimal.RequireFromString("1500.50"),
		Quantity:  2,
		ImageURL:  "https://cdn.example.com/mate.jpg",
		Slug:      "mate-cup",
	}
}

func TestSnapshotAdd(t *testing.T) {
	t.Run("adds and accumulates quantity", func(t *testing.T) {
		snap := cart.NewSnapshot()

		require.NoError(t, snap.Add(mateLine(), 10))
		require.NoError(t, snap.Add(mateLine(), 10))

		line, ok := snap.Get(7)
		require.True(t, ok)
		assert.Equal(t, int32(4), line.Quantity)
		assert.Equal(t, 1, snap.Len())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		snap := cart.NewSnapshot()
		line := mateLine()
		line.Quantity = 0
		assert.ErrorIs(t, snap.Add(line, 10), cart.ErrInvalidQuantity)
	})

	t.Run("rejects quantity above stock", func(t *testing.T) {
		snap := cart.NewSnapshot()
		line := mateLine()
		line.Quantity = 11
		assert.ErrorIs(t, snap.Add(line, 10), cart.ErrInsufficientStock)
	})

	t.Run("caps accumulated quantity at stock", func(t *testing.T) {
		snap := cart.NewSnapshot()
		line := mateLine()
		line.Quantity = 3

		require.NoError(t, snap.Add(line, 5))
		assert.ErrorIs(t, snap.Add(line, 5), cart.ErrQuantityOverStock)

		kept, _ := snap.Get(7)
		assert.Equal(t, int32(3), kept.Quantity)
	})

	t.Run("refreshes display snapshot on re-add", func(t *testing.T) {
		snap := cart.NewSnapshot()
		require.NoError(t, snap.Add(mateLine(), 10))

		repriced := mateLine()
		repriced.UnitPrice = decimal.RequireFromString("1800.00")
		require.NoError(t, snap.Add(repriced, 10))

		line, _ := snap.Get(7)
		assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("1800.00")))
	})
}

func TestSnapshotRemove(t *testing.T) {
	snap := cart.NewSnapshot()
	require.NoError(t, snap.Add(mateLine(), 10))

	_, ok := snap.Remove(7)
	assert.True(t, ok)
	assert.True(t, snap.IsEmpty())

	_, ok = snap.Remove(7)
	assert.False(t, ok)
}

func TestSnapshotTotalAndOrdering(t *testing.T) {
	snap := cart.NewSnapshot()

	second := mateLine()
	second.ProductID = 9
	second.Name = "Thermos"
	second.UnitPrice = decimal.RequireFromString("8000.00")
	second.Quantity = 1

	require.NoError(t, snap.Add(second, 10))
	require.NoError(t, snap.Add(mateLine(), 10))

	lines := snap.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(7), lines[0].ProductID)
	assert.Equal(t, int64(9), lines[1].ProductID)

	assert.True(t, snap.Total().Equal(decimal.RequireFromString("11001.00")),
		"expected 11001.00, got %s", snap.Total())
}

func TestSnapshotCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		snap := cart.NewSnapshot()
		require.NoError(t, snap.Add(mateLine(), 10))

		data, err := snap.Encode()
		require.NoError(t, err)

		decoded := cart.Decode(data)
		require.Equal(t, 1, decoded.Len())

		line, ok := decoded.Get(7)
		require.True(t, ok)
		assert.Equal(t, "Mate cup", line.Name)
		assert.Equal(t, int32(2), line.Quantity)
		assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("1500.50")))
	})

	t.Run("malformed payload yields empty cart", func(t *testing.T) {
		for _, data := range [][]byte{
			nil,
			[]byte(""),
			[]byte("not json"),
			[]byte(`{"abc":{"quantity":1}}`),
			[]byte(`{"7":{"quantity":0}}`),
			[]byte(`{"7":{"quantity":1,"price":"-1"}}`),
			[]byte(`{"-1":{"quantity":1}}`),
		} {
			snap := cart.Decode(data)
			assert.True(t, snap.IsEmpty(), "payload %q should decode to an empty cart", data)
		}
	})
}
