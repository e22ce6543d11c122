// Expiry Sweeper (C7) and the market-event entry points (book deltas and
// trade ticks) that drive C4/C7 together. Grounded on
// internal/orders/order_lifecycle.go's canOrderExpire/ExpireOrder, but
// redesigned as purely event-driven: that lifecycle's scheduleExpiration
// spawns a time.NewTimer goroutine per order, which this module does not
// carry forward, since no timers are scheduled inside the engine - GTD
// expiry is evaluated synchronously on market events instead.
package matchingengine

import (
	"go.uber.org/zap"

	"github.com/tradsys-sim/matching-engine/internal/book"
	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/statemachine"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

// ApplyDelta feeds a book-level delta into the engine (§4.1), then sweeps
// GTD expiries and re-runs the matching core over every resting order for
// this instrument, since the delta may have made a previously
// non-marketable order marketable.
func (e *Engine) ApplyDelta(d book.Delta) {
	tsEvent := e.clock.TimeNs()
	e.book.ApplyDelta(d)
	e.runMarketEventPass(tsEvent)
}

// ApplyTrade feeds a trade-tick print into the engine (§4.1), then runs the
// same sweep-then-match pass as ApplyDelta.
func (e *Engine) ApplyTrade(t book.Trade) {
	tsEvent := e.clock.TimeNs()
	e.book.ApplyTrade(t)
	e.runMarketEventPass(tsEvent)
}

func (e *Engine) runMarketEventPass(tsEvent int64) {
	e.sweepExpired(tsEvent)
	for _, order := range e.restingSnapshot() {
		e.processOrder(order, tsEvent)
		e.onOrderClosed(order, tsEvent)
	}
	e.compactResting()
	if e.book.IsCrossed() {
		e.log.Error("book left crossed after market event pass",
			zap.String("instrument", string(e.instrument.Id)), zap.String("book", e.book.String()))
	}
}

// sweepExpired scans GTD orders in insertion order and expires any whose
// expire-time is at or before event time (§4.7). Non-GTD orders are not
// swept.
func (e *Engine) sweepExpired(tsEvent int64) {
	for _, order := range e.restingSnapshot() {
		if order.IsClosed() || order.TimeInForce != types.TimeInForceGTD || order.ExpireTimeNs == 0 {
			continue
		}
		if order.ExpireTimeNs > tsEvent {
			continue
		}
		statemachine.Transition(order, types.OrderStatusExpired, tsEvent)
		e.emit(events.KindExpired, order, tsEvent, nil)
		e.cache.UpdateOrder(order)
	}
}
