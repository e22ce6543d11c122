package fillmodel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFullFillCapsAtAvailable(t *testing.T) {
	f := FullFill{}
	assert.True(t, decimal.NewFromInt(3).Equal(f.FillQty(decimal.NewFromInt(5), decimal.NewFromInt(3))))
	assert.True(t, decimal.NewFromInt(5).Equal(f.FillQty(decimal.NewFromInt(5), decimal.NewFromInt(10))))
}

func TestProbabilisticPartialCapsAtRatioOfFull(t *testing.T) {
	f := NewProbabilisticPartial(decimal.NewFromFloat(0.5))
	got := f.FillQty(decimal.NewFromInt(10), decimal.NewFromInt(10))
	assert.True(t, decimal.NewFromInt(5).Equal(got), "got %s", got.String())

	// the ratio applies to what FullFill yields, already bounded by available
	// liquidity: 0.5 * min(10, 4) = 2.
	got = f.FillQty(decimal.NewFromInt(10), decimal.NewFromInt(4))
	assert.True(t, decimal.NewFromInt(2).Equal(got), "got %s", got.String())
}

func TestBasisPointsFeeChargesMakerOrTakerRate(t *testing.T) {
	f := BasisPointsFee{MakerBps: decimal.NewFromInt(1), TakerBps: decimal.NewFromInt(10)}
	price := decimal.NewFromInt(100)
	qty := decimal.NewFromInt(2)

	taker := f.Fee(price, qty, true)
	maker := f.Fee(price, qty, false)

	// notional = 200; taker = 200 * 10bps = 0.20; maker = 200 * 1bps = 0.02
	assert.True(t, decimal.NewFromFloat(0.20).Equal(taker), "got %s", taker.String())
	assert.True(t, decimal.NewFromFloat(0.02).Equal(maker), "got %s", maker.String())
}

func TestNoFeeChargesNothing(t *testing.T) {
	f := NoFee{}
	assert.True(t, decimal.Zero.Equal(f.Fee(decimal.NewFromInt(100), decimal.NewFromInt(2), true)))
}
