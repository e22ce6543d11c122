package matchingengine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradsys-sim/matching-engine/internal/book"
	"github.com/tradsys-sim/matching-engine/internal/clock"
	"github.com/tradsys-sim/matching-engine/internal/config"
	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

func TestOtoParentCancelRejectsChild(t *testing.T) {
	inst := testInstrument()
	clk := clock.NewTest(1)
	e, rec := newTestEngine(inst, types.BookTypeL1MBP, config.Default(), clk)

	parent := &types.Order{
		ClientOrderId: "O-PARENT", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeLimit,
		Quantity: decimal.NewFromInt(1), Price: mustDec("1400.00"),
		TimeInForce: types.TimeInForceGTC, Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOTO, LinkedOrderIds: []types.ClientOrderId{"O-CHILD"},
	}
	child := &types.Order{
		ClientOrderId: "O-CHILD", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeLimit,
		Quantity: decimal.NewFromInt(1), Price: mustDec("1300.00"),
		TimeInForce: types.TimeInForceGTC, Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOTO, ParentOrderId: "O-PARENT",
	}
	e.Submit(parent)
	e.Submit(child)
	require.Len(t, rec.Events(), 2) // two Accepted

	e.Cancel("O-PARENT")

	evs := rec.Events()
	require.Len(t, evs, 4)
	assert.Equal(t, events.KindCanceled, evs[2].Kind)
	assert.Equal(t, types.ClientOrderId("O-PARENT"), evs[2].ClientOrderId)
	assert.Equal(t, events.KindRejected, evs[3].Kind)
	assert.Equal(t, types.ClientOrderId("O-CHILD"), evs[3].ClientOrderId)
	assert.Equal(t, "Rejected OTO order from O-PARENT", evs[3].Reason)
	assert.Equal(t, types.OrderStatusRejected, child.Status)
}

func TestOcoCancelCancelsOtherLeg(t *testing.T) {
	inst := testInstrument()
	clk := clock.NewTest(1)
	e, rec := newTestEngine(inst, types.BookTypeL1MBP, config.Default(), clk)

	legA := &types.Order{
		ClientOrderId: "O-A", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeLimit,
		Quantity: decimal.NewFromInt(1), Price: mustDec("1500.00"),
		TimeInForce: types.TimeInForceGTC, Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOCO, LinkedOrderIds: []types.ClientOrderId{"O-B"},
	}
	legB := &types.Order{
		ClientOrderId: "O-B", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeLimit,
		Quantity: decimal.NewFromInt(1), Price: mustDec("1400.00"),
		TimeInForce: types.TimeInForceGTC, Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOCO, LinkedOrderIds: []types.ClientOrderId{"O-A"},
	}
	e.Submit(legA)
	e.Submit(legB)
	require.Len(t, rec.Events(), 2)

	e.Cancel("O-A")

	evs := rec.Events()
	require.Len(t, evs, 4)
	assert.Equal(t, events.KindCanceled, evs[2].Kind)
	assert.Equal(t, types.ClientOrderId("O-A"), evs[2].ClientOrderId)
	assert.Equal(t, events.KindCanceled, evs[3].Kind)
	assert.Equal(t, types.ClientOrderId("O-B"), evs[3].ClientOrderId)
	assert.Equal(t, types.OrderStatusCanceled, legB.Status)
}

func TestOuoFillReducesLinkedLegQuantity(t *testing.T) {
	inst := testInstrument()
	clk := clock.NewTest(1)
	e, rec := newTestEngine(inst, types.BookTypeL1MBP, config.Default(), clk)

	e.ApplyDelta(book.Delta{InstrumentId: testInstrumentId, Action: types.BookActionAdd,
		Side: types.OrderSideSell, Price: mustDec("1500.00"), Quantity: decimal.NewFromInt(5)})

	taker := &types.Order{
		ClientOrderId: "O-TAKER", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeMarket,
		Quantity: decimal.NewFromInt(1), TimeInForce: types.TimeInForceGTC,
		Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOUO, LinkedOrderIds: []types.ClientOrderId{"O-OTHER"},
	}
	other := &types.Order{
		ClientOrderId: "O-OTHER", InstrumentId: testInstrumentId,
		Side: types.OrderSideBuy, Type: types.OrderTypeLimit,
		Quantity: decimal.NewFromInt(3), Price: mustDec("1300.00"),
		TimeInForce: types.TimeInForceGTC, Status: types.OrderStatusInitialized,
		ContingencyType: types.ContingencyOUO, LinkedOrderIds: []types.ClientOrderId{"O-TAKER"},
	}
	e.Submit(other)
	require.Len(t, rec.Events(), 1) // Accepted

	e.Submit(taker) // Market: Filled directly (no Accept), then OUO reduces `other`

	evs := rec.Events()
	require.Len(t, evs, 3)
	assert.Equal(t, events.KindFilled, evs[1].Kind)
	assert.Equal(t, events.KindUpdated, evs[2].Kind)
	assert.Equal(t, types.ClientOrderId("O-OTHER"), evs[2].ClientOrderId)
	assert.True(t, decimal.NewFromInt(2).Equal(evs[2].Quantity))
	assert.True(t, decimal.NewFromInt(2).Equal(other.Quantity))
}
