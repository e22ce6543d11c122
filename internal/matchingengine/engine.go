// Package matchingengine implements the venue's per-instrument matching
// engine: the Triggering & Matching Core (C4), Command Handlers (C5),
// Contingency Manager (C6), and Expiry Sweeper (C7) from the module's
// design, wired around the Book Core (internal/book), Order State Machine
// (internal/statemachine), and Validator (internal/validator).
//
// Grounded on internal/orders/matching/engine_core.go's Engine (PlaceOrder/
// CancelOrder dispatch shape, stop-trigger-on-add comparison) and
// internal/orders/service/core_operations.go's command-handler-per-verb
// layout, generalized from "one shared matching engine across symbols" to
// "one Engine instance per instrument" and from float64 prices to
// decimal.Decimal throughout.
package matchingengine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradsys-sim/matching-engine/internal/book"
	"github.com/tradsys-sim/matching-engine/internal/bus"
	"github.com/tradsys-sim/matching-engine/internal/cache"
	"github.com/tradsys-sim/matching-engine/internal/clock"
	"github.com/tradsys-sim/matching-engine/internal/config"
	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/fillmodel"
	"github.com/tradsys-sim/matching-engine/internal/ids"
	"github.com/tradsys-sim/matching-engine/internal/metrics"
	"github.com/tradsys-sim/matching-engine/internal/types"
	"github.com/tradsys-sim/matching-engine/internal/validator"
)

// netPosition is the minimal running net position the Validator's
// short-sell and reduce-only checks need (§4.3.5-.6). This is deliberately
// not a portfolio/margin system (both are explicit Non-goals, §1) - it is
// the smallest state that makes those two rules evaluable, derived purely
// from fills this engine itself produced.
type netPosition struct {
	side types.OrderSide
	qty  decimal.Decimal
}

// Engine is one venue-side matching engine for a single instrument (§5:
// "single-threaded cooperative per instrument"). Not safe for concurrent
// use - callers must serialize commands and market events into one Engine.
type Engine struct {
	instrument  types.Instrument
	bookType    types.BookType
	omsType     types.OmsType
	accountType types.AccountType
	cfg         config.EngineConfig

	clock   clock.Clock
	bus     bus.Bus
	cache   *cache.Cache
	ids     ids.Generator
	fill    fillmodel.FillModel
	fee     fillmodel.FeeModel
	log     *zap.Logger
	metrics *metrics.Collector

	book *book.Book

	// resting is the engine's own insertion-ordered registry of orders it
	// currently owns (§3 Core-Owned Registries): every order from admission
	// until it reaches a closed status.
	resting []*types.Order

	positions map[string]*netPosition // keyed by AccountId
}

// New constructs a matching engine for one instrument (§6 constructor
// inputs: instrument, raw-id seed, fill model, fee model, book type, OMS
// type, account type, clock, message bus, cache, config).
func New(
	instrument types.Instrument,
	rawId uint64,
	fillModel fillmodel.FillModel,
	feeModel fillmodel.FeeModel,
	bookType types.BookType,
	omsType types.OmsType,
	accountType types.AccountType,
	clk clock.Clock,
	messageBus bus.Bus,
	orderCache *cache.Cache,
	cfg config.EngineConfig,
	log *zap.Logger,
) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		instrument:  instrument,
		bookType:    bookType,
		omsType:     omsType,
		accountType: accountType,
		cfg:         cfg,
		clock:       clk,
		bus:         messageBus,
		cache:       orderCache,
		ids:         ids.New(rawId, cfg.UseRandomIds),
		fill:        fillModel,
		fee:         feeModel,
		log:         log,
		metrics:     metrics.NewCollector(),
		book:        book.New(instrument.Id, bookType),
		positions:   make(map[string]*netPosition),
	}
}

// Book exposes the engine's book core, e.g. for test assertions.
func (e *Engine) Book() *book.Book { return e.book }

// Metrics exposes the engine's Prometheus collector, e.g. to serve it over
// an HTTP /metrics endpoint.
func (e *Engine) Metrics() *metrics.Collector { return e.metrics }

func (e *Engine) addResting(o *types.Order) {
	e.resting = append(e.resting, o)
}

func (e *Engine) removeResting(o *types.Order) {
	for i, r := range e.resting {
		if r.ClientOrderId == o.ClientOrderId {
			e.resting = append(e.resting[:i], e.resting[i+1:]...)
			return
		}
	}
}

// compactResting drops any closed orders left in the registry after a
// sweep/matching pass that iterated over a snapshot.
func (e *Engine) compactResting() {
	kept := e.resting[:0]
	for _, o := range e.resting {
		if !o.IsClosed() {
			kept = append(kept, o)
		}
	}
	e.resting = kept
}

func (e *Engine) restingSnapshot() []*types.Order {
	out := make([]*types.Order, len(e.resting))
	copy(out, e.resting)
	return out
}

func (e *Engine) updatePosition(accountId string, side types.OrderSide, qty decimal.Decimal) {
	pos := e.positions[accountId]
	if pos == nil {
		e.positions[accountId] = &netPosition{side: side, qty: qty}
		return
	}
	if pos.side == side {
		pos.qty = pos.qty.Add(qty)
		return
	}
	switch {
	case pos.qty.GreaterThan(qty):
		pos.qty = pos.qty.Sub(qty)
	case pos.qty.Equal(qty):
		delete(e.positions, accountId)
	default:
		pos.side = side
		pos.qty = qty.Sub(pos.qty)
	}
}

func (e *Engine) positionFor(accountId string) *validator.Position {
	pos := e.positions[accountId]
	if pos == nil {
		return nil
	}
	return &validator.Position{Side: pos.side, Quantity: pos.qty}
}

func (e *Engine) positionId(order *types.Order) string {
	if !e.cfg.UsePositionIds {
		return ""
	}
	return fmt.Sprintf("%s-%s", order.AccountId, order.InstrumentId)
}

// bidAskStrings renders top-of-book for reason strings in the exact
// "None"/price shape §4.4's post-only and stop-rejection messages use.
func (e *Engine) bidAskStrings() (bidStr, askStr string) {
	bidStr, askStr = "None", "None"
	if bid, ok := e.book.BestBid(); ok {
		bidStr = bid.StringFixed(e.instrument.PriceDecimals())
	}
	if ask, ok := e.book.BestAsk(); ok {
		askStr = ask.StringFixed(e.instrument.PriceDecimals())
	}
	return
}

func (e *Engine) emit(kind events.Kind, order *types.Order, tsEvent int64, mutate func(*events.Event)) {
	ev := events.Event{
		Kind:          kind,
		TraderId:      order.TraderId,
		StrategyId:    order.StrategyId,
		InstrumentId:  order.InstrumentId,
		ClientOrderId: order.ClientOrderId,
		VenueOrderId:  order.VenueOrderId,
		AccountId:     order.AccountId,
		EventId:       e.ids.EventId(),
		TsEvent:       tsEvent,
		TsInit:        tsEvent,
	}
	if mutate != nil {
		mutate(&ev)
	}
	e.logEmit(ev)
	e.bus.Publish(bus.EndpointExecEngineProcess, ev)
}

// logEmit logs each emitted event at the density internal/orders/order_lifecycle.go's
// handleOrderFilled/handleOrderCancelled/handleOrderRejected/handleOrderExpired
// log their terminal transitions: Info on the events a caller cares about
// without reading the bus, Debug on the frequent intermediate ones.
func (e *Engine) logEmit(ev events.Event) {
	cid := zap.String("cid", string(ev.ClientOrderId))
	switch ev.Kind {
	case events.KindFilled:
		e.log.Info("Order filled", cid,
			zap.String("last_qty", ev.LastQty.String()), zap.String("last_px", ev.LastPx.String()))
	case events.KindCanceled:
		e.log.Info("Order cancelled", cid, zap.String("reason", ev.Reason))
	case events.KindRejected:
		e.log.Info("Order rejected", cid, zap.String("reason", ev.Reason))
	case events.KindExpired:
		e.log.Info("Order expired", cid)
	case events.KindUpdated:
		e.log.Info("Order updated successfully", cid)
	default:
		e.log.Debug("emit", cid, zap.String("kind", string(ev.Kind)))
	}
}
