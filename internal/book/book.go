// Package book implements the Book Core (C1): best bid/ask, initialization
// flags, an optional last-trade print, and (for L2 engines) a sorted
// price-level ladder sufficient to walk through for fills.
//
// Grounded on internal/core/matching/order_book.go's OrderBook: its
// GetBestBid/GetBestAsk/GetSpread top-of-book accessors and its
// getHeapLevels price-level aggregation are generalized here from "derived
// from a locally-held resting-order heap" to "maintained directly from an
// externally-fed delta/trade stream" (§3 Book State says the book is fed
// deltas and trades, not orders - order registries live in the engine, C4).
package book

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/common/errors"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

// Delta is a single order-book update (§4.1).
type Delta struct {
	InstrumentId types.InstrumentId
	Action       types.BookAction
	Side         types.OrderSide
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	Sequence     uint64
}

// Trade is a trade-tick print (§4.1 apply_trade).
type Trade struct {
	InstrumentId types.InstrumentId
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	TsEvent      int64
}

// level is one price/quantity pair in the L2 ladder.
type level struct {
	price decimal.Decimal
	qty   decimal.Decimal
}

// Book holds one instrument's matching-relevant book state. Not safe for
// concurrent use - per §5 the engine (and therefore its book) is
// single-threaded per instrument.
type Book struct {
	instrumentId types.InstrumentId
	bookType     types.BookType

	bidInitialized bool
	askInitialized bool
	bestBid        decimal.Decimal
	bestAsk        decimal.Decimal

	lastTradePrice decimal.Decimal
	hasLastTrade   bool
	tsEvent        int64

	// bids descends by price, asks ascends by price; both are L2-only.
	bids []level
	asks []level
}

// New creates an empty book for instrumentId.
func New(instrumentId types.InstrumentId, bookType types.BookType) *Book {
	return &Book{instrumentId: instrumentId, bookType: bookType}
}

// ApplyDelta updates top-of-book (and, for L2, the level ladder) from a
// single book delta (§4.1).
func (b *Book) ApplyDelta(d Delta) {
	if d.InstrumentId != b.instrumentId {
		panic(errors.Newf(errors.ErrInstrumentMismatch,
			"book delta for %s applied to book for %s", d.InstrumentId, b.instrumentId))
	}

	if d.Action == types.BookActionClear {
		b.clearSide(d.Side)
		return
	}

	if b.bookType == types.BookTypeL2MBP {
		// The ladder is the source of truth once it exists: an Add/Update
		// that zeroes out the level at the current best removes it from the
		// ladder (applyLevel), so best-of-side must be rederived from the
		// ladder on every action, not just Delete - otherwise the scalar
		// goes stale at a price no longer resting.
		b.applyLevel(d)
		b.recomputeBestFromLadder(d.Side)
		return
	}

	// L1: no ladder to fall back on, so Delete can only clear the
	// initialized flag when it names the current best, and Add/Update marks
	// the side initialized and improves top-of-book if this price is better
	// than (or equal to, on first observation) current best.
	if d.Action == types.BookActionDelete {
		if d.Side == types.OrderSideBuy {
			if b.bidInitialized && b.bestBid.Equal(d.Price) {
				b.bidInitialized = false
			}
		} else {
			if b.askInitialized && b.bestAsk.Equal(d.Price) {
				b.askInitialized = false
			}
		}
		return
	}

	if d.Side == types.OrderSideBuy {
		if !b.bidInitialized || d.Price.GreaterThan(b.bestBid) {
			b.bestBid = d.Price
		}
		b.bidInitialized = true
	} else {
		if !b.askInitialized || d.Price.LessThan(b.bestAsk) {
			b.bestAsk = d.Price
		}
		b.askInitialized = true
	}
}

// ApplyTrade records a trade print. This implementation does not decrement
// resting liquidity on a trade tick - passive-book mutation from trade
// ticks is left unexercised by tests and is not implemented here.
func (b *Book) ApplyTrade(t Trade) {
	if t.InstrumentId != b.instrumentId {
		panic(errors.Newf(errors.ErrInstrumentMismatch,
			"trade tick for %s applied to book for %s", t.InstrumentId, b.instrumentId))
	}
	b.lastTradePrice = t.Price
	b.hasLastTrade = true
	b.tsEvent = t.TsEvent
}

// BestBid returns the best bid price and whether the bid side is initialized.
func (b *Book) BestBid() (decimal.Decimal, bool) { return b.bestBid, b.bidInitialized }

// BestAsk returns the best ask price and whether the ask side is initialized.
func (b *Book) BestAsk() (decimal.Decimal, bool) { return b.bestAsk, b.askInitialized }

// LastTrade returns the last trade price, if one has been recorded.
func (b *Book) LastTrade() (decimal.Decimal, bool) { return b.lastTradePrice, b.hasLastTrade }

// Crosses reports whether a marketable order on side at px would execute
// against resting liquidity (§4.1).
func (b *Book) Crosses(side types.OrderSide, px decimal.Decimal) bool {
	if side == types.OrderSideBuy {
		return b.askInitialized && px.GreaterThanOrEqual(b.bestAsk)
	}
	return b.bidInitialized && px.LessThanOrEqual(b.bestBid)
}

// IsCrossed reports whether the book is internally crossed (bid >= ask),
// which must never be true after an event is fully processed (§8).
func (b *Book) IsCrossed() bool {
	return b.bidInitialized && b.askInitialized && b.bestBid.GreaterThanOrEqual(b.bestAsk)
}

// Levels returns the L2 ladder on side, best price first, up to maxLevels
// (0 means unlimited). Used by C4 to walk the book (§4.4).
func (b *Book) Levels(side types.OrderSide, maxLevels int) []Level {
	src := b.asks
	if side == types.OrderSideBuy {
		src = b.bids
	}
	if maxLevels > 0 && maxLevels < len(src) {
		src = src[:maxLevels]
	}
	out := make([]Level, len(src))
	for i, lv := range src {
		out[i] = Level{Price: lv.price, Quantity: lv.qty}
	}
	return out
}

// Level is one price/quantity pair exposed to callers walking the book.
type Level struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

func (b *Book) applyLevel(d Delta) {
	ladder := &b.asks
	ascending := true
	if d.Side == types.OrderSideBuy {
		ladder = &b.bids
		ascending = false
	}

	switch d.Action {
	case types.BookActionAdd, types.BookActionUpdate:
		for i := range *ladder {
			if (*ladder)[i].price.Equal(d.Price) {
				if d.Quantity.IsZero() {
					*ladder = append((*ladder)[:i], (*ladder)[i+1:]...)
				} else {
					(*ladder)[i].qty = d.Quantity
				}
				return
			}
		}
		if d.Quantity.IsZero() {
			return
		}
		insertLevel(ladder, level{price: d.Price, qty: d.Quantity}, ascending)
	case types.BookActionDelete:
		for i := range *ladder {
			if (*ladder)[i].price.Equal(d.Price) {
				*ladder = append((*ladder)[:i], (*ladder)[i+1:]...)
				return
			}
		}
	}
}

func insertLevel(ladder *[]level, lv level, ascending bool) {
	idx := len(*ladder)
	for i, existing := range *ladder {
		if (ascending && lv.price.LessThan(existing.price)) ||
			(!ascending && lv.price.GreaterThan(existing.price)) {
			idx = i
			break
		}
	}
	*ladder = append(*ladder, level{})
	copy((*ladder)[idx+1:], (*ladder)[idx:])
	(*ladder)[idx] = lv
}

func (b *Book) clearSide(side types.OrderSide) {
	if side == types.OrderSideBuy {
		b.bids = nil
		b.bidInitialized = false
		b.bestBid = decimal.Decimal{}
	} else {
		b.asks = nil
		b.askInitialized = false
		b.bestAsk = decimal.Decimal{}
	}
}

func (b *Book) recomputeBestFromLadder(side types.OrderSide) {
	if side == types.OrderSideBuy {
		if len(b.bids) == 0 {
			b.bidInitialized = false
			return
		}
		b.bestBid = b.bids[0].price
		b.bidInitialized = true
		return
	}
	if len(b.asks) == 0 {
		b.askInitialized = false
		return
	}
	b.bestAsk = b.asks[0].price
	b.askInitialized = true
}

// String renders top-of-book for debug/log output, e.g. "bid=99.95 ask=100.05".
func (b *Book) String() string {
	bidStr, askStr := "None", "None"
	if b.bidInitialized {
		bidStr = b.bestBid.String()
	}
	if b.askInitialized {
		askStr = b.bestAsk.String()
	}
	return fmt.Sprintf("bid=%s ask=%s", bidStr, askStr)
}
