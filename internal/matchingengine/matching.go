// Triggering & Matching Core (C4). Grounded on
// internal/core/matching/order_book.go's matchBuyOrder/matchSellOrder
// price-level walk and internal/orders/matching/engine_core.go's
// StopPrice-vs-LastPrice trigger comparison, generalized into a
// full marketability/trigger predicate table and decimal-based level walk.
package matchingengine

import (
	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/book"
	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/statemachine"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

// checkTrigger reports whether a stop/touch order's trigger condition is
// currently satisfied (§4.4 Triggering).
func (e *Engine) checkTrigger(order *types.Order) bool {
	if !order.Type.HasTriggerPrice() {
		return false
	}
	if order.Status == types.OrderStatusTriggered {
		return true
	}
	bestBid, bidOk := e.book.BestBid()
	bestAsk, askOk := e.book.BestAsk()

	// Stop orders trigger when the opposite top-of-book moves adversely
	// past the trigger: a buy stop (protecting a short) fires once the ask
	// rises to or through the trigger; a sell stop (protecting a long)
	// fires once the bid falls to or through it.
	if order.Type.IsStopType() {
		if order.Side == types.OrderSideBuy {
			return askOk && bestAsk.GreaterThanOrEqual(order.TriggerPrice)
		}
		return bidOk && bestBid.LessThanOrEqual(order.TriggerPrice)
	}
	// Touch types (MarketIfTouched/LimitIfTouched): same-side top-of-book.
	if order.Side == types.OrderSideBuy {
		return bidOk && bestBid.GreaterThanOrEqual(order.TriggerPrice)
	}
	return askOk && bestAsk.LessThanOrEqual(order.TriggerPrice)
}

// isMarketable reports whether order would execute against resting
// liquidity right now (§4.4 Marketability).
func (e *Engine) isMarketable(order *types.Order) bool {
	switch {
	case order.Type == types.OrderTypeMarket:
		return true
	case order.Type == types.OrderTypeLimit:
		return e.book.Crosses(order.Side, order.Price)
	case order.Type.HasTriggerPrice():
		if order.Status != types.OrderStatusTriggered {
			return false
		}
		if order.Type.HasLimitPrice() {
			return e.book.Crosses(order.Side, order.Price)
		}
		return true
	default:
		return false
	}
}

// processOrder runs the trigger check (if applicable) and, if the order is
// now marketable, executes matching - the single entry point C4 exposes,
// invoked after admitting a new order and after every market event that
// might cross resting orders (§4.4).
func (e *Engine) processOrder(order *types.Order, tsEvent int64) {
	if order.IsClosed() {
		return
	}
	if order.Type.HasTriggerPrice() && order.Status != types.OrderStatusTriggered {
		if !e.checkTrigger(order) {
			return
		}
		statemachine.Transition(order, types.OrderStatusTriggered, tsEvent)
		e.emit(events.KindTriggered, order, tsEvent, func(ev *events.Event) {
			ev.TriggerPrice = order.TriggerPrice
		})
	}
	if !e.isMarketable(order) {
		return
	}
	e.executeMatch(order, tsEvent)
}

// levelQualifies reports whether a price level is consumable by order,
// given its limit-price constraint (if any).
func levelQualifies(order *types.Order, lv book.Level) bool {
	if !order.Type.HasLimitPrice() {
		return true
	}
	if order.Side == types.OrderSideBuy {
		return lv.Price.LessThanOrEqual(order.Price)
	}
	return lv.Price.GreaterThanOrEqual(order.Price)
}

// availableMarketableQty sums the resting liquidity order could consume
// right now, honoring its own limit-price constraint. On an L1 book,
// top-of-book is treated as infinite liquidity (§4.4 L1 engine), so FOK can
// never fail for a marketable L1 order - this returns a sentinel "ample"
// quantity in that case.
func (e *Engine) availableMarketableQty(order *types.Order) decimal.Decimal {
	oppSide := order.Side.Opposite()
	if e.bookType != types.BookTypeL2MBP {
		return order.LeavesQty() // L1: top-of-book is infinite liquidity.
	}
	total := decimal.Zero
	for _, lv := range e.book.Levels(oppSide, 0) {
		if !levelQualifies(order, lv) {
			break
		}
		total = total.Add(lv.Quantity)
	}
	return total
}

// executeMatch walks the book against order, producing Filled events and
// updating order status, honoring FOK/IOC/GTC/GTD policy (§4.4).
func (e *Engine) executeMatch(order *types.Order, tsEvent int64) {
	if order.TimeInForce == types.TimeInForceFOK {
		available := e.availableMarketableQty(order)
		if available.LessThan(order.LeavesQty()) {
			const reason = "Fill or kill order cannot be filled at full amount"
			if order.Status == types.OrderStatusAccepted || order.Status == types.OrderStatusTriggered {
				e.doCancel(order, reason, tsEvent)
			} else {
				e.reject(order, reason, tsEvent)
			}
			return
		}
	}

	oppSide := order.Side.Opposite()
	if e.bookType != types.BookTypeL2MBP {
		e.matchL1(order, oppSide, tsEvent)
	} else {
		e.matchL2(order, oppSide, tsEvent)
	}

	if order.LeavesQty().IsZero() {
		e.removeResting(order)
		return
	}
	if order.TimeInForce == types.TimeInForceIOC {
		e.doCancel(order, "", tsEvent)
	}
	// GTC/GTD/AtTheOpen/AtTheClose: remainder rests (already PartiallyFilled
	// or still Accepted/Triggered if nothing filled).
}

// matchL1 treats the opposite top-of-book as infinite liquidity and fills
// order's entire leaves in a single event (§4.4 L1 engine).
func (e *Engine) matchL1(order *types.Order, oppSide types.OrderSide, tsEvent int64) {
	var px decimal.Decimal
	var ok bool
	if oppSide == types.OrderSideBuy {
		px, ok = e.book.BestBid()
	} else {
		px, ok = e.book.BestAsk()
	}
	if !ok {
		return
	}
	e.applyFill(order, order.LeavesQty(), px, tsEvent)
}

// matchL2 walks the book-level ladder, filling min(leaves, level_qty) at
// each qualifying level in price order, one OrderFilled event per level
// consumed (§4.4 Walking the book).
func (e *Engine) matchL2(order *types.Order, oppSide types.OrderSide, tsEvent int64) {
	for _, lv := range e.book.Levels(oppSide, 0) {
		if order.LeavesQty().IsZero() {
			return
		}
		if !levelQualifies(order, lv) {
			return
		}
		fillQty := e.fill.FillQty(order.LeavesQty(), lv.Quantity)
		if fillQty.IsZero() {
			continue
		}
		e.applyFill(order, fillQty, lv.Price, tsEvent)
	}
}

// applyFill records one fill step: mutates order via the state machine,
// emits OrderFilled, and cascades OUO/position-tracking side effects.
func (e *Engine) applyFill(order *types.Order, qty, px decimal.Decimal, tsEvent int64) {
	// A market order is matched straight from Submitted with no OrderAccepted
	// event; it moves to Accepted here so the fill transition is admissible.
	if order.Status == types.OrderStatusSubmitted {
		statemachine.Transition(order, types.OrderStatusAccepted, tsEvent)
	}
	statemachine.ApplyFill(order, qty, px, types.LiquiditySideTaker, tsEvent)
	e.updatePosition(order.AccountId, order.Side, qty)
	_ = e.fee.Fee(px, qty, true) // fee charged; not itself part of the emitted event shape (§6)

	tradeId := e.ids.TradeId()
	e.emit(events.KindFilled, order, tsEvent, func(ev *events.Event) {
		ev.LastQty = qty
		ev.LastPx = px
		ev.LiquiditySide = types.LiquiditySideTaker
		ev.TradeId = tradeId
		ev.PositionId = e.positionId(order)
	})
	e.metrics.RecordFilled(string(order.InstrumentId), string(order.Side), string(order.Type), tsEvent-order.SubmittedNs)
	e.cache.UpdateOrder(order)
	e.onOrderFilled(order, qty, tsEvent)
}
