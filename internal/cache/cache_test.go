package cache

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradsys-sim/matching-engine/internal/types"
)

const instrumentId = types.InstrumentId("ESZ21.GLBX")

func newOpenOrder(cid string, side types.OrderSide) *types.Order {
	return &types.Order{
		ClientOrderId: types.ClientOrderId(cid),
		InstrumentId:  instrumentId,
		Side:          side,
		Status:        types.OrderStatusAccepted,
		Quantity:      decimal.NewFromInt(1),
	}
}

func TestAddAndGetOrder(t *testing.T) {
	c := New()
	o := newOpenOrder("O-1", types.OrderSideBuy)
	c.AddOrder(o)

	got, ok := c.GetOrder("O-1")
	require.True(t, ok)
	assert.Equal(t, o, got)
}

func TestOpenOrdersInsertionOrderAndSideFilter(t *testing.T) {
	c := New()
	a := newOpenOrder("O-1", types.OrderSideBuy)
	b := newOpenOrder("O-2", types.OrderSideSell)
	d := newOpenOrder("O-3", types.OrderSideBuy)
	c.AddOrder(a)
	c.AddOrder(b)
	c.AddOrder(d)

	all := c.OpenOrders(instrumentId, nil)
	require.Len(t, all, 3)
	assert.Equal(t, types.ClientOrderId("O-1"), all[0].ClientOrderId)
	assert.Equal(t, types.ClientOrderId("O-2"), all[1].ClientOrderId)
	assert.Equal(t, types.ClientOrderId("O-3"), all[2].ClientOrderId)

	buySide := types.OrderSideBuy
	buys := c.OpenOrders(instrumentId, &buySide)
	require.Len(t, buys, 2)
	assert.Equal(t, types.ClientOrderId("O-1"), buys[0].ClientOrderId)
	assert.Equal(t, types.ClientOrderId("O-3"), buys[1].ClientOrderId)
}

func TestUpdateOrderRemovesFromOpenIndexWhenClosed(t *testing.T) {
	c := New()
	o := newOpenOrder("O-1", types.OrderSideBuy)
	c.AddOrder(o)

	o.Status = types.OrderStatusFilled
	c.UpdateOrder(o)

	assert.Empty(t, c.OpenOrders(instrumentId, nil))

	got, ok := c.GetOrder("O-1")
	require.True(t, ok, "closed orders remain queryable for the retention window")
	assert.Equal(t, types.OrderStatusFilled, got.Status)
}

func TestAddOrderSkipsOpenIndexForAlreadyClosedOrder(t *testing.T) {
	c := New()
	o := newOpenOrder("O-1", types.OrderSideBuy)
	o.Status = types.OrderStatusRejected
	c.AddOrder(o)

	assert.Empty(t, c.OpenOrders(instrumentId, nil))
	_, ok := c.GetOrder("O-1")
	assert.True(t, ok)
}

func TestGetOrderMissing(t *testing.T) {
	c := New()
	_, ok := c.GetOrder("nope")
	assert.False(t, ok)
}
