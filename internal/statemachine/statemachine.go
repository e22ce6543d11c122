// Package statemachine implements the Order State Machine (C2): given an
// order and a target status, validates the transition and, if admissible,
// mutates the order's status (and, for fills, its filled/avg-price/last-fill
// fields) atomically.
//
// Grounded on internal/orders/order_lifecycle.go's isValidStatusTransition
// map-of-allowed-transitions pattern, generalized to the engine's full
// status set. That lifecycle's function returns a bool its caller turns
// into a sentinel error at a service layer; here an inadmissible
// transition is raised as a hard failure (errors.EngineFault) directly,
// since the single-threaded, synchronous engine core has no service layer
// to soften it into a typed rejection (channel 2: "applying an inadmissible state
// transition ... is surfaced to the caller as a hard failure").
package statemachine

import (
	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/common/errors"
	"github.com/tradsys-sim/matching-engine/internal/types"
)

var allowedTransitions = map[types.OrderStatus][]types.OrderStatus{
	types.OrderStatusInitialized: {
		types.OrderStatusSubmitted,
		types.OrderStatusRejected,
		types.OrderStatusDenied,
	},
	types.OrderStatusSubmitted: {
		types.OrderStatusAccepted,
		types.OrderStatusRejected,
		types.OrderStatusCanceled,
	},
	types.OrderStatusAccepted: {
		types.OrderStatusTriggered,
		types.OrderStatusPendingUpdate,
		types.OrderStatusPendingCancel,
		types.OrderStatusFilled,
		types.OrderStatusPartiallyFilled,
		types.OrderStatusCanceled,
		types.OrderStatusExpired,
	},
	types.OrderStatusTriggered: {
		types.OrderStatusFilled,
		types.OrderStatusPartiallyFilled,
		types.OrderStatusCanceled,
		types.OrderStatusExpired,
		types.OrderStatusPendingUpdate,
		types.OrderStatusPendingCancel,
	},
	types.OrderStatusPendingUpdate: {
		types.OrderStatusAccepted,
		types.OrderStatusTriggered,
		types.OrderStatusFilled,
		types.OrderStatusPartiallyFilled,
		types.OrderStatusCanceled,
		types.OrderStatusExpired,
	},
	types.OrderStatusPendingCancel: {
		types.OrderStatusCanceled,
		types.OrderStatusAccepted,
		types.OrderStatusTriggered,
	},
	types.OrderStatusPartiallyFilled: {
		types.OrderStatusFilled,
		types.OrderStatusCanceled,
		types.OrderStatusExpired,
	},
	// Terminal states - no transitions allowed.
	types.OrderStatusRejected: {},
	types.OrderStatusCanceled: {},
	types.OrderStatusExpired:  {},
	types.OrderStatusFilled:   {},
	types.OrderStatusDenied:   {},
}

// IsAdmissible reports whether the transition from -> to is allowed (§4.2).
func IsAdmissible(from, to types.OrderStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves order into status to, mutating its Status and UpdatedNs.
// Panics with an *errors.EngineFault if the transition is inadmissible or
// the order is already closed (§7 channel 2, §8 "closed orders receive no
// further events").
func Transition(order *types.Order, to types.OrderStatus, tsNs int64) {
	if order.IsClosed() {
		panic(errors.Newf(errors.ErrInvalidTransition,
			"order %s is closed (%s); cannot transition to %s",
			order.ClientOrderId, order.Status, to))
	}
	if !IsAdmissible(order.Status, to) {
		panic(errors.Newf(errors.ErrInvalidTransition,
			"order %s: %s -> %s is not an admissible transition",
			order.ClientOrderId, order.Status, to))
	}
	order.Status = to
	order.UpdatedNs = tsNs
}

// ApplyFill mutates order to reflect a new fill: filled quantity, average
// fill price, and last-fill attributes update atomically (§4.2), then the
// order transitions to Filled or PartiallyFilled depending on leaves.
func ApplyFill(order *types.Order, fillQty, fillPx decimal.Decimal, liquiditySide types.LiquiditySide, tsNs int64) {
	if order.IsClosed() {
		panic(errors.Newf(errors.ErrInvalidTransition,
			"order %s is closed (%s); cannot apply fill", order.ClientOrderId, order.Status))
	}

	priorFilled := order.FilledQty
	priorNotional := order.AvgFillPrice.Mul(priorFilled)
	newFilled := priorFilled.Add(fillQty)

	order.AvgFillPrice = priorNotional.Add(fillPx.Mul(fillQty)).Div(newFilled)
	order.FilledQty = newFilled
	order.LastFillQty = fillQty
	order.LastFillPx = fillPx
	order.LastFillLiquiditySide = liquiditySide

	to := types.OrderStatusPartiallyFilled
	if order.LeavesQty().IsZero() {
		to = types.OrderStatusFilled
	}
	if to == order.Status {
		// A further partial fill leaves the order PartiallyFilled.
		order.UpdatedNs = tsNs
		return
	}
	Transition(order, to, tsNs)
}
