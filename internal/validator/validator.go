// Package validator implements the Validator (C3): the ordered pre-trade
// check chain run before any other processing of a Submit.
//
// Grounded on internal/orders/service/business_validators.go's
// ValidateBusinessRules early-return chain (one method per rule, each
// returning on first failure), generalized from "return a Go error" to
// "return a Rejection carrying the exact reason string" - unlike that
// chain's generic business-rule errors, the caller here needs the precise
// text to put in the emitted OrderRejected event, not just a pass/fail
// signal.
package validator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/types"
)

// Position is the narrow view of a strategy's net position the short-sell
// and reduce-only checks need. A nil Position means no position is held.
type Position struct {
	Side     types.OrderSide
	Quantity decimal.Decimal
}

// Rejection carries the reason string for a failed check (§4.3); ok==false
// on the zero value, so callers test `if rej, ok := ...; ok`.
type Rejection struct {
	Reason string
}

// Context is everything the Validator needs beyond the order itself.
type Context struct {
	Instrument   types.Instrument
	AccountType  types.AccountType
	EventTimeNs  int64
	Position     *Position // nil if flat
	UseReduceOnly bool

	// Parent/linked lookups for contingency checks (§4.3.7-.8); ParentOrder
	// is nil if the order has no parent or the parent isn't cached.
	ParentOrder  *types.Order
	LinkedOrders []*types.Order
}

// ValidateSubmit runs the eight ordered checks (§4.3.1-.8) and returns the
// first failing Rejection, or ok=false if the order passes every check.
func ValidateSubmit(order *types.Order, ctx Context) (Rejection, bool) {
	if rej, failed := validateActiveWindow(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateQuantityPrecision(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validatePricePrecision(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateTriggerPrecision(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateShortSellCash(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateReduceOnly(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateContingencyParent(order, ctx); failed {
		return rej, true
	}
	if rej, failed := validateContingencyLinked(order, ctx); failed {
		return rej, true
	}
	return Rejection{}, false
}

// validateActiveWindow is §4.3.1.
func validateActiveWindow(order *types.Order, ctx Context) (Rejection, bool) {
	inst := ctx.Instrument
	if inst.HasExpiration() && ctx.EventTimeNs >= inst.ExpirationNs {
		return Rejection{Reason: fmt.Sprintf(
			"Contract %s has expired, expiration %d", inst.Id, inst.ExpirationNs)}, true
	}
	if inst.HasActivation() && ctx.EventTimeNs < inst.ActivationNs {
		return Rejection{Reason: fmt.Sprintf(
			"Contract %s is not yet active, activation %d", inst.Id, inst.ActivationNs)}, true
	}
	return Rejection{}, false
}

// validateQuantityPrecision is §4.3.2.
func validateQuantityPrecision(order *types.Order, ctx Context) (Rejection, bool) {
	p := types.QuantityPrecision(order.Quantity)
	q := ctx.Instrument.SizePrecision
	if p != q {
		return Rejection{Reason: fmt.Sprintf(
			"Invalid order quantity precision for order %s, was %d when %s size precision is %d",
			order.ClientOrderId, p, ctx.Instrument.Id, q)}, true
	}
	return Rejection{}, false
}

// validatePricePrecision is §4.3.3 (limit-bearing types only).
func validatePricePrecision(order *types.Order, ctx Context) (Rejection, bool) {
	if !order.Type.HasLimitPrice() {
		return Rejection{}, false
	}
	p := types.PricePrecision(order.Price)
	q := ctx.Instrument.PricePrecision
	if p != q {
		return Rejection{Reason: fmt.Sprintf(
			"Invalid order price precision for order %s, was %d when %s price precision is %d",
			order.ClientOrderId, p, ctx.Instrument.Id, q)}, true
	}
	return Rejection{}, false
}

// validateTriggerPrecision is §4.3.4 (stop/touch types only).
func validateTriggerPrecision(order *types.Order, ctx Context) (Rejection, bool) {
	if !order.Type.HasTriggerPrice() {
		return Rejection{}, false
	}
	p := types.PricePrecision(order.TriggerPrice)
	q := ctx.Instrument.PricePrecision
	if p != q {
		return Rejection{Reason: fmt.Sprintf(
			"Invalid order trigger price precision for order %s, was %d when %s price precision is %d",
			order.ClientOrderId, p, ctx.Instrument.Id, q)}, true
	}
	return Rejection{}, false
}

// validateShortSellCash is §4.3.5.
func validateShortSellCash(order *types.Order, ctx Context) (Rejection, bool) {
	if ctx.AccountType != types.AccountTypeCash || order.Side != types.OrderSideSell {
		return Rejection{}, false
	}
	heldQty := decimal.Zero
	haveLongPosition := false
	if ctx.Position != nil && ctx.Position.Side == types.OrderSideBuy {
		heldQty = ctx.Position.Quantity
		haveLongPosition = true
	}
	if !haveLongPosition || heldQty.LessThan(order.Quantity) {
		return Rejection{Reason: fmt.Sprintf(
			"Short selling not permitted on a CASH account with position %s and order %s",
			heldQty.String(), orderRepr(order))}, true
	}
	return Rejection{}, false
}

// validateReduceOnly is §4.3.6.
func validateReduceOnly(order *types.Order, ctx Context) (Rejection, bool) {
	if !ctx.UseReduceOnly || !order.ReduceOnly {
		return Rejection{}, false
	}
	reduces := ctx.Position != nil &&
		ctx.Position.Side == order.Side.Opposite() &&
		ctx.Position.Quantity.GreaterThanOrEqual(order.Quantity)
	if !reduces {
		return Rejection{Reason: fmt.Sprintf(
			"Reduce-only order %s (%s-%s) would have increased position",
			order.ClientOrderId, order.Type, order.Side)}, true
	}
	return Rejection{}, false
}

// validateContingencyParent is §4.3.7 (OTO children).
func validateContingencyParent(order *types.Order, ctx Context) (Rejection, bool) {
	if order.ContingencyType != types.ContingencyOTO || order.ParentOrderId == "" {
		return Rejection{}, false
	}
	if ctx.ParentOrder == nil {
		return Rejection{}, false
	}
	if ctx.ParentOrder.IsClosed() && ctx.ParentOrder.Status != types.OrderStatusFilled {
		return Rejection{Reason: fmt.Sprintf(
			"Rejected OTO order from %s", order.ParentOrderId)}, true
	}
	return Rejection{}, false
}

// validateContingencyLinked is §4.3.8 (OCO/OUO).
func validateContingencyLinked(order *types.Order, ctx Context) (Rejection, bool) {
	if order.ContingencyType != types.ContingencyOCO && order.ContingencyType != types.ContingencyOUO {
		return Rejection{}, false
	}
	for _, linked := range ctx.LinkedOrders {
		if linked.IsClosed() {
			return Rejection{Reason: fmt.Sprintf(
				"Contingent order %s already closed", linked.ClientOrderId)}, true
		}
	}
	return Rejection{}, false
}

// orderRepr renders the compact "{TYPE}-{SIDE}-{qty}" form the short-sell
// reason string embeds as order_repr.
func orderRepr(order *types.Order) string {
	return fmt.Sprintf("%s-%s-%s", order.Type, order.Side, order.Quantity.String())
}
