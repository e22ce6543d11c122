// Package fillmodel holds the two pluggable strategies the engine consumes
// through narrow interfaces: the fee and fill models are pluggable
// strategies consumed through narrow interfaces, and the engine
// constructor takes a fill-model and a fee-model.
//
// Nothing elsewhere in the codebase plays this role directly - trades are
// always filled for their full matched amount there, and fees are computed
// as a flat struct field on trade_types.go's Trade - so FillModel is built
// fresh: a strategy that can decide to fill less than the full marketable
// amount even when resting liquidity is sufficient, simulating the
// probabilistic partial-fills/slippage a real venue exhibits, with no
// latency dimension. FeeModel is grounded on trade_types.go's per-trade fee
// fields, generalized into a pluggable strategy the same way.
package fillmodel

import "github.com/shopspring/decimal"

// FillModel decides, for a given marketable quantity, how much of it
// actually fills this tick. It never returns more than available, and never
// introduces latency - it is a fill-ratio decision only.
type FillModel interface {
	// FillQty returns the quantity to fill now, given the order's remaining
	// leaves and the quantity available at the level being walked.
	// 0 <= result <= min(leaves, available).
	FillQty(leaves, available decimal.Decimal) decimal.Decimal
}

// FullFill always fills the maximum marketable amount; this mirrors the
// rest of the codebase's implicit behavior (trades always consume
// everything they can) and is the engine's default.
type FullFill struct{}

func (FullFill) FillQty(leaves, available decimal.Decimal) decimal.Decimal {
	if leaves.LessThan(available) {
		return leaves
	}
	return available
}

// ProbabilisticPartial simulates a venue that fills less than the full
// marketable amount even when liquidity is sufficient, by capping every fill
// at Ratio of what FullFill would have produced (no randomness is involved). Ratio must be in
// (0, 1]; 1 degenerates to FullFill.
type ProbabilisticPartial struct {
	Ratio decimal.Decimal
}

func NewProbabilisticPartial(ratio decimal.Decimal) ProbabilisticPartial {
	return ProbabilisticPartial{Ratio: ratio}
}

func (p ProbabilisticPartial) FillQty(leaves, available decimal.Decimal) decimal.Decimal {
	full := FullFill{}.FillQty(leaves, available)
	return full.Mul(p.Ratio).Truncate(8)
}

// FeeModel computes the fee owed on a single fill.
type FeeModel interface {
	Fee(price, qty decimal.Decimal, taker bool) decimal.Decimal
}

// BasisPointsFee charges a flat basis-points rate, optionally different for
// maker vs taker liquidity, mirroring trade_types.go's per-trade fee fields
// generalized into a reusable rate table.
type BasisPointsFee struct {
	MakerBps decimal.Decimal
	TakerBps decimal.Decimal
}

func (f BasisPointsFee) Fee(price, qty decimal.Decimal, taker bool) decimal.Decimal {
	bps := f.MakerBps
	if taker {
		bps = f.TakerBps
	}
	notional := price.Mul(qty)
	return notional.Mul(bps).Div(decimal.NewFromInt(10000))
}

// NoFee never charges anything; useful for scenario tests that assert on
// fill quantities/prices without fee noise.
type NoFee struct{}

func (NoFee) Fee(decimal.Decimal, decimal.Decimal, bool) decimal.Decimal {
	return decimal.Zero
}
