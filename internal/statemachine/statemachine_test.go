package statemachine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradsys-sim/matching-engine/internal/common/errors"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

func newOrder(status types.OrderStatus) *types.Order {
	return &types.Order{
		ClientOrderId: "O-1",
		Status:        status,
		Quantity:      decimal.NewFromInt(10),
	}
}

func TestIsAdmissible(t *testing.T) {
	assert.True(t, IsAdmissible(types.OrderStatusInitialized, types.OrderStatusSubmitted))
	assert.True(t, IsAdmissible(types.OrderStatusAccepted, types.OrderStatusTriggered))
	assert.False(t, IsAdmissible(types.OrderStatusFilled, types.OrderStatusCanceled))
	assert.False(t, IsAdmissible(types.OrderStatusInitialized, types.OrderStatusFilled))
}

func TestTransitionMutatesStatusAndTimestamp(t *testing.T) {
	o := newOrder(types.OrderStatusInitialized)
	Transition(o, types.OrderStatusSubmitted, 42)
	assert.Equal(t, types.OrderStatusSubmitted, o.Status)
	assert.Equal(t, int64(42), o.UpdatedNs)
}

func TestTransitionPanicsOnInadmissible(t *testing.T) {
	o := newOrder(types.OrderStatusInitialized)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		fault, ok := r.(*errors.EngineFault)
		require.True(t, ok)
		assert.Equal(t, errors.ErrInvalidTransition, fault.Code)
	}()
	Transition(o, types.OrderStatusFilled, 1)
}

func TestTransitionPanicsWhenAlreadyClosed(t *testing.T) {
	o := newOrder(types.OrderStatusFilled)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*errors.EngineFault)
		require.True(t, ok)
	}()
	Transition(o, types.OrderStatusCanceled, 1)
}

func TestApplyFillPartial(t *testing.T) {
	o := newOrder(types.OrderStatusAccepted)
	ApplyFill(o, decimal.NewFromInt(4), decimal.NewFromInt(100), types.LiquiditySideTaker, 10)

	assert.Equal(t, types.OrderStatusPartiallyFilled, o.Status)
	assert.True(t, decimal.NewFromInt(4).Equal(o.FilledQty))
	assert.True(t, decimal.NewFromInt(100).Equal(o.AvgFillPrice))
	assert.True(t, decimal.NewFromInt(6).Equal(o.LeavesQty()))
}

func TestApplyFillWeightedAveragePriceAcrossTwoFills(t *testing.T) {
	o := newOrder(types.OrderStatusAccepted)
	ApplyFill(o, decimal.NewFromInt(4), decimal.NewFromInt(100), types.LiquiditySideTaker, 10)
	ApplyFill(o, decimal.NewFromInt(6), decimal.NewFromInt(110), types.LiquiditySideTaker, 20)

	assert.Equal(t, types.OrderStatusFilled, o.Status)
	assert.True(t, o.LeavesQty().IsZero())
	// (4*100 + 6*110) / 10 = 106
	assert.True(t, decimal.NewFromInt(106).Equal(o.AvgFillPrice), "got %s", o.AvgFillPrice.String())
}
