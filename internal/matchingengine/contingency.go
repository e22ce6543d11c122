// Contingency Manager (C6). No direct analogue elsewhere in this codebase -
// contingency-order linking (OCO/OTO/OUO) has no prior equivalent here - so
// this is built in the surrounding idiom: a small set of methods reacting
// to terminal-transition/fill notifications and re-entering the engine's
// own cancel/update mechanics, the same "event causes re-entrant command
// handling" shape internal/orders/order_lifecycle.go's handleStateChange
// switch uses for handleOrderFilled/handleOrderCancelled.
package matchingengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/events"
	"github.com/tradsys-sim/matching-engine/internal/statemachine"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

// onOrderClosed cascades OTO/OCO effects when order has just reached a
// terminal status (§4.6). A no-op when contingent-order support is
// disabled (§6 support_contingent_orders) or order carries no linkage.
func (e *Engine) onOrderClosed(order *types.Order, tsEvent int64) {
	if !e.cfg.SupportContingentOrders || !order.IsClosed() {
		return
	}
	switch order.ContingencyType {
	case types.ContingencyOTO:
		e.cascadeOTO(order, tsEvent)
	case types.ContingencyOCO:
		e.cascadeOCO(order, tsEvent)
	}
}

// cascadeOTO handles one-triggers-other: on parent Filled, children are
// unlinked and proceed independently; on any other terminal status
// (Rejected/Canceled/Expired), children are rejected.
func (e *Engine) cascadeOTO(parent *types.Order, tsEvent int64) {
	for _, childCid := range parent.LinkedOrderIds {
		child, ok := e.cache.GetOrder(childCid)
		if !ok || child.IsClosed() {
			continue
		}
		if parent.Status == types.OrderStatusFilled {
			child.ParentOrderId = ""
			child.ContingencyType = types.ContingencyNone
			e.cache.UpdateOrder(child)
			continue
		}
		statemachine.Transition(child, types.OrderStatusRejected, tsEvent)
		e.emit(events.KindRejected, child, tsEvent, func(ev *events.Event) {
			ev.Reason = fmt.Sprintf("Rejected OTO order from %s", parent.ClientOrderId)
		})
		e.removeResting(child)
		e.cache.UpdateOrder(child)
	}
}

// cascadeOCO handles one-cancels-other: when one leg reaches any terminal
// state, the other is canceled; if the other leg is already closed, no
// event is emitted (§4.6).
func (e *Engine) cascadeOCO(order *types.Order, tsEvent int64) {
	for _, linkedCid := range order.LinkedOrderIds {
		linked, ok := e.cache.GetOrder(linkedCid)
		if !ok || linked.IsClosed() {
			continue
		}
		e.doCancel(linked, "", tsEvent)
	}
}

// onOrderFilled handles one-updates-other (OUO): the other leg's leaves are
// reduced by the filled amount via an OrderUpdated event; if its leaves
// reach zero, it is canceled (§4.6).
func (e *Engine) onOrderFilled(order *types.Order, fillQty decimal.Decimal, tsEvent int64) {
	if !e.cfg.SupportContingentOrders || order.ContingencyType != types.ContingencyOUO {
		return
	}
	for _, linkedCid := range order.LinkedOrderIds {
		linked, ok := e.cache.GetOrder(linkedCid)
		if !ok || linked.IsClosed() {
			continue
		}
		newQty := linked.Quantity.Sub(fillQty)
		if newQty.LessThanOrEqual(linked.FilledQty) {
			e.doCancel(linked, "", tsEvent)
			continue
		}
		linked.Quantity = newQty
		e.emit(events.KindUpdated, linked, tsEvent, func(ev *events.Event) {
			ev.Quantity = newQty
		})
		e.cache.UpdateOrder(linked)
	}
}
