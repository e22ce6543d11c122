package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradsys-sim/matching-engine/internal/types"
)

func baseInstrument() types.Instrument {
	return types.Instrument{
		Id:             "ESZ21.GLBX",
		PricePrecision: 2,
		SizePrecision:  0,
	}
}

func baseOrder() *types.Order {
	return &types.Order{
		ClientOrderId: "O-1",
		InstrumentId:  "ESZ21.GLBX",
		Side:          types.OrderSideBuy,
		Type:          types.OrderTypeLimit,
		Quantity:      decimal.NewFromInt(10),
		Price:         mustDecimal("1500.00"),
	}
}

func mustDecimal(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestValidateSubmitExpiredContract(t *testing.T) {
	inst := baseInstrument()
	inst.ExpirationNs = 100
	ctx := Context{Instrument: inst, EventTimeNs: 150}

	rej, failed := ValidateSubmit(baseOrder(), ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "has expired")
	assert.Contains(t, rej.Reason, "ESZ21.GLBX")
}

func TestValidateSubmitNotYetActive(t *testing.T) {
	inst := baseInstrument()
	inst.ActivationNs = 200
	ctx := Context{Instrument: inst, EventTimeNs: 100}

	rej, failed := ValidateSubmit(baseOrder(), ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "is not yet active")
}

func TestValidateSubmitQuantityPrecisionMismatch(t *testing.T) {
	ctx := Context{Instrument: baseInstrument()}
	order := baseOrder()
	order.Quantity = decimal.NewFromFloat(10.5)

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "Invalid order quantity precision")
}

func TestValidateSubmitPricePrecisionMismatchOnlyAppliesToLimitBearing(t *testing.T) {
	ctx := Context{Instrument: baseInstrument()}
	order := baseOrder()
	order.Price = decimal.NewFromFloat(1500.001)

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "Invalid order price precision")

	marketOrder := baseOrder()
	marketOrder.Type = types.OrderTypeMarket
	marketOrder.Price = decimal.NewFromFloat(1500.001)
	_, failed = ValidateSubmit(marketOrder, ctx)
	assert.False(t, failed, "market orders carry no limit price to validate")
}

func TestValidateSubmitShortSellOnCashAccountWithoutLongPosition(t *testing.T) {
	ctx := Context{Instrument: baseInstrument(), AccountType: types.AccountTypeCash}
	order := baseOrder()
	order.Side = types.OrderSideSell

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "Short selling not permitted")
}

func TestValidateSubmitShortSellOnCashAccountWithSufficientLongPosition(t *testing.T) {
	ctx := Context{
		Instrument:  baseInstrument(),
		AccountType: types.AccountTypeCash,
		Position:    &Position{Side: types.OrderSideBuy, Quantity: decimal.NewFromInt(20)},
	}
	order := baseOrder()
	order.Side = types.OrderSideSell

	_, failed := ValidateSubmit(order, ctx)
	assert.False(t, failed)
}

func TestValidateSubmitReduceOnlyRejectsIncreasingOrder(t *testing.T) {
	ctx := Context{Instrument: baseInstrument(), UseReduceOnly: true}
	order := baseOrder()
	order.ReduceOnly = true

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "would have increased position")
}

func TestValidateSubmitReduceOnlyAllowsReducingOrder(t *testing.T) {
	ctx := Context{
		Instrument:    baseInstrument(),
		UseReduceOnly: true,
		Position:      &Position{Side: types.OrderSideSell, Quantity: decimal.NewFromInt(20)},
	}
	order := baseOrder()
	order.ReduceOnly = true

	_, failed := ValidateSubmit(order, ctx)
	assert.False(t, failed)
}

func TestValidateSubmitContingencyParentClosedNonFilled(t *testing.T) {
	parent := &types.Order{ClientOrderId: "O-PARENT", Status: types.OrderStatusCanceled}
	ctx := Context{Instrument: baseInstrument(), ParentOrder: parent}
	order := baseOrder()
	order.ContingencyType = types.ContingencyOTO
	order.ParentOrderId = "O-PARENT"

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "Rejected OTO order from O-PARENT")
}

func TestValidateSubmitContingencyLinkedAlreadyClosed(t *testing.T) {
	linked := &types.Order{ClientOrderId: "O-LINK", Status: types.OrderStatusFilled}
	ctx := Context{Instrument: baseInstrument(), LinkedOrders: []*types.Order{linked}}
	order := baseOrder()
	order.ContingencyType = types.ContingencyOCO

	rej, failed := ValidateSubmit(order, ctx)
	require.True(t, failed)
	assert.Contains(t, rej.Reason, "Contingent order O-LINK already closed")
}

func TestValidateSubmitPassesCleanOrder(t *testing.T) {
	ctx := Context{Instrument: baseInstrument()}
	_, failed := ValidateSubmit(baseOrder(), ctx)
	assert.False(t, failed)
}
