// Command Handlers (C5). Grounded on
// internal/orders/service/core_operations.go and
// internal/orders/matching/engine_processors.go's one-method-per-command
// dispatch shape.
package matchingengine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tradsys-sim/matching-engine/internal/bus"
	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/statemachine"
	"github.com/tradsys-sim/matching-engine/internal/types"
	"github.com/tradsys-sim/matching-engine/internal/validator"
)

// Submit admits a new order (§4.5 Submit). The order must be freshly
// constructed in Initialized status; admitting the same order twice is a
// programming error (§8 "Admitting the same order twice is a programming
// error (not an event)"), surfaced by the state machine's Transition panic.
func (e *Engine) Submit(order *types.Order) {
	tsEvent := e.clock.TimeNs()
	statemachine.Transition(order, types.OrderStatusSubmitted, tsEvent)
	order.SubmittedNs = tsEvent
	e.metrics.RecordSubmitted(string(order.InstrumentId), string(order.Side), string(order.Type))

	if order.TimeInForce == types.TimeInForceGTD && !e.cfg.SupportGtdOrders {
		e.reject(order, fmt.Sprintf(
			"GTD time in force is not supported for order %s", order.ClientOrderId), tsEvent)
		return
	}

	ctx := e.validatorContext(order, tsEvent)
	if rej, failed := validator.ValidateSubmit(order, ctx); failed {
		e.reject(order, rej.Reason, tsEvent)
		return
	}

	if order.Type == types.OrderTypeLimit && order.PostOnly && e.book.Crosses(order.Side, order.Price) {
		bidStr, askStr := e.bidAskStrings()
		e.reject(order, fmt.Sprintf(
			"POST_ONLY LIMIT %s order limit px of %s would have been a TAKER: bid=%s, ask=%s",
			order.Side, order.Price.String(), bidStr, askStr), tsEvent)
		return
	}

	if order.Type.IsStopType() && e.checkTrigger(order) && e.cfg.RejectStopOrders {
		bidStr, askStr := e.bidAskStrings()
		e.reject(order, fmt.Sprintf(
			"%s %s order stop px of %s was in the market: bid=%s, ask=%s, but rejected because of configuration",
			order.Type, order.Side, order.TriggerPrice.String(), bidStr, askStr), tsEvent)
		return
	}

	if order.Type == types.OrderTypeMarket {
		required := order.Side // Buy needs the ask side, Sell needs the bid side.
		var initialized bool
		if required == types.OrderSideBuy {
			_, initialized = e.book.BestAsk()
		} else {
			_, initialized = e.book.BestBid()
		}
		if !initialized {
			e.reject(order, fmt.Sprintf("No market for %s", order.InstrumentId), tsEvent)
			return
		}
	}

	order.VenueOrderId = types.VenueOrderId(e.ids.VenueOrderId())

	if order.Type != types.OrderTypeMarket {
		statemachine.Transition(order, types.OrderStatusAccepted, tsEvent)
		order.AcceptedNs = tsEvent
		e.emit(events.KindAccepted, order, tsEvent, nil)
		e.addResting(order)
	}
	e.cache.AddOrder(order)

	e.processOrder(order, tsEvent)
	e.onOrderClosed(order, tsEvent)
	e.compactResting()
}

// Cancel cancels a single open order (§4.5 Cancel).
func (e *Engine) Cancel(cid types.ClientOrderId) {
	tsEvent := e.clock.TimeNs()
	order, ok := e.cache.GetOrder(cid)
	if !ok || order.IsClosed() {
		e.emitCancelRejected(cid, fmt.Sprintf("Order %s not found", cid), tsEvent)
		return
	}
	e.doCancel(order, "", tsEvent)
	e.onOrderClosed(order, tsEvent)
}

// CancelAllOrders cancels every open order for instrumentId, optionally
// filtered by side (§4.5 CancelAllOrders). Orders for other instruments are
// untouched. Per §9 Open Question (a), the within-filter cancellation order
// here is the cache's insertion order - a deterministic, documented choice,
// not the unspecified order the reference tolerates.
func (e *Engine) CancelAllOrders(instrumentId types.InstrumentId, side *types.OrderSide) {
	tsEvent := e.clock.TimeNs()
	for _, order := range e.cache.OpenOrders(instrumentId, side) {
		e.doCancel(order, "", tsEvent)
		e.onOrderClosed(order, tsEvent)
	}
}

// BatchCancelOrders processes each contained Cancel in the given order,
// each producing its own event (§4.5 BatchCancelOrders).
func (e *Engine) BatchCancelOrders(cids []types.ClientOrderId) {
	for _, cid := range cids {
		e.Cancel(cid)
	}
}

// ModifyRequest carries the optional new attributes for a Modify command;
// a nil field leaves that attribute unchanged.
type ModifyRequest struct {
	Price        *decimal.Decimal
	TriggerPrice *decimal.Decimal
	Quantity     *decimal.Decimal
}

// Modify amends a resting order's price/trigger/quantity (§4.5 Modify).
func (e *Engine) Modify(cid types.ClientOrderId, req ModifyRequest) {
	tsEvent := e.clock.TimeNs()
	order, ok := e.cache.GetOrder(cid)
	if !ok || order.IsClosed() {
		e.emitModifyRejected(cid, fmt.Sprintf("Order %s not found", cid), tsEvent)
		return
	}

	newPrice := order.Price
	if req.Price != nil {
		newPrice = *req.Price
	}
	newTrigger := order.TriggerPrice
	if req.TriggerPrice != nil {
		newTrigger = *req.TriggerPrice
	}
	newQty := order.Quantity
	if req.Quantity != nil {
		newQty = *req.Quantity
	}

	if order.PostOnly && order.Type == types.OrderTypeLimit && e.book.Crosses(order.Side, newPrice) {
		bidStr, askStr := e.bidAskStrings()
		e.emit(events.KindModifyRejected, order, tsEvent, func(ev *events.Event) {
			ev.Reason = fmt.Sprintf(
				"POST_ONLY LIMIT %s order with new limit px of %s would have been a TAKER: bid=%s, ask=%s",
				order.Side, newPrice.String(), bidStr, askStr)
		})
		return
	}

	order.Price = newPrice
	order.TriggerPrice = newTrigger
	order.Quantity = newQty
	e.emit(events.KindUpdated, order, tsEvent, func(ev *events.Event) {
		ev.Price = newPrice
		ev.TriggerPrice = newTrigger
		ev.Quantity = newQty
	})
	e.cache.UpdateOrder(order)

	e.processOrder(order, tsEvent)
	e.onOrderClosed(order, tsEvent)
	e.compactResting()
}

// doCancel performs the mechanics shared by Cancel/CancelAllOrders/the
// contingency manager's OCO/OUO cascades: transition to Canceled, emit, and
// drop from both registries.
func (e *Engine) doCancel(order *types.Order, reason string, tsEvent int64) {
	statemachine.Transition(order, types.OrderStatusCanceled, tsEvent)
	e.emit(events.KindCanceled, order, tsEvent, func(ev *events.Event) {
		ev.Reason = reason
	})
	e.metrics.RecordCanceled(string(order.InstrumentId), string(order.Side), string(order.Type))
	e.removeResting(order)
	e.cache.UpdateOrder(order)
}

func (e *Engine) reject(order *types.Order, reason string, tsEvent int64) {
	statemachine.Transition(order, types.OrderStatusRejected, tsEvent)
	e.emit(events.KindRejected, order, tsEvent, func(ev *events.Event) {
		ev.Reason = reason
	})
	e.metrics.RecordRejected(string(order.InstrumentId), string(order.Side), string(order.Type))
	e.cache.AddOrder(order)
}

func (e *Engine) emitCancelRejected(cid types.ClientOrderId, reason string, tsEvent int64) {
	ev := events.Event{
		Kind:          events.KindCancelRejected,
		ClientOrderId: cid,
		EventId:       e.ids.EventId(),
		TsEvent:       tsEvent,
		TsInit:        tsEvent,
		Reason:        reason,
	}
	e.log.Warn("Order cancel rejected", zap.String("cid", string(cid)), zap.String("reason", reason))
	e.bus.Publish(bus.EndpointExecEngineProcess, ev)
}

func (e *Engine) emitModifyRejected(cid types.ClientOrderId, reason string, tsEvent int64) {
	ev := events.Event{
		Kind:          events.KindModifyRejected,
		ClientOrderId: cid,
		EventId:       e.ids.EventId(),
		TsEvent:       tsEvent,
		TsInit:        tsEvent,
		Reason:        reason,
	}
	e.log.Warn("Order modify rejected", zap.String("cid", string(cid)), zap.String("reason", reason))
	e.bus.Publish(bus.EndpointExecEngineProcess, ev)
}

func (e *Engine) validatorContext(order *types.Order, tsEvent int64) validator.Context {
	ctx := validator.Context{
		Instrument:    e.instrument,
		AccountType:   e.accountType,
		EventTimeNs:   tsEvent,
		Position:      e.positionFor(order.AccountId),
		UseReduceOnly: e.cfg.UseReduceOnly,
	}
	if !e.cfg.SupportContingentOrders {
		return ctx
	}
	if order.ContingencyType == types.ContingencyOTO && order.ParentOrderId != "" {
		if parent, ok := e.cache.GetOrder(order.ParentOrderId); ok {
			ctx.ParentOrder = parent
		}
	}
	if order.ContingencyType == types.ContingencyOCO || order.ContingencyType == types.ContingencyOUO {
		for _, cid := range order.LinkedOrderIds {
			if linked, ok := e.cache.GetOrder(cid); ok {
				ctx.LinkedOrders = append(ctx.LinkedOrders, linked)
			}
		}
	}
	return ctx
}
