package types

import "github.com/shopspring/decimal"

// ClientOrderId is the strategy-space identifier assigned before submission.
type ClientOrderId string

// VenueOrderId is the venue-space identifier assigned on Accept.
type VenueOrderId string

// Order is the engine's view of a strategy order. It is handed to the engine
// by value/pointer from outside (the engine observes, it does not construct
// orders) and the engine owns its lifecycle from first admission until a
// closed status is reached (§3 Lifecycle).
//
// Adapted from internal/trading/types/order.go's Order struct: the float64
// fields become decimal.Decimal (see SPEC_FULL.md §3), OrderStatus/OrderType
// gain the full stop/touch/trailing surface, and contingency linkage fields
// are added for OTO/OCO/OUO (§4.6).
type Order struct {
	ClientOrderId ClientOrderId
	VenueOrderId  VenueOrderId
	InstrumentId  InstrumentId
	TraderId      string
	StrategyId    string
	AccountId     string

	Side OrderSide
	Type OrderType

	Quantity       decimal.Decimal
	FilledQty      decimal.Decimal
	Price          decimal.Decimal // limit-bearing types
	TriggerPrice   decimal.Decimal // stop/touch types
	AvgFillPrice   decimal.Decimal

	TimeInForce TimeInForce
	ExpireTimeNs int64 // GTD only; 0 means unset

	PostOnly    bool
	ReduceOnly  bool

	ContingencyType ContingencyType
	ParentOrderId   ClientOrderId
	LinkedOrderIds  []ClientOrderId

	Status OrderStatus

	SubmittedNs int64
	AcceptedNs  int64
	UpdatedNs   int64

	// LastFillQty/LastFillPx/LastFillLiquiditySide describe the most recent
	// fill applied by the state machine (C2).
	LastFillQty          decimal.Decimal
	LastFillPx           decimal.Decimal
	LastFillLiquiditySide LiquiditySide
}

// LeavesQty returns the unfilled remainder: quantity - filled (§3 Derived).
func (o *Order) LeavesQty() decimal.Decimal {
	return o.Quantity.Sub(o.FilledQty)
}

// IsClosed reports whether the order has reached a terminal status.
func (o *Order) IsClosed() bool {
	return o.Status.IsClosed()
}

// IsLimitType reports whether the order carries a resting limit price.
func (o *Order) IsLimitType() bool {
	return o.Type.HasLimitPrice()
}

// QuantityPrecision returns the number of decimal places of Quantity as
// supplied by the caller (the exponent of the decimal as parsed) - used by
// the validator's precision checks (§4.3.2).
func QuantityPrecision(d decimal.Decimal) uint32 {
	return decimalPlaces(d)
}

// PricePrecision returns the number of decimal places of a price/trigger
// value as supplied by the caller.
func PricePrecision(d decimal.Decimal) uint32 {
	return decimalPlaces(d)
}

func decimalPlaces(d decimal.Decimal) uint32 {
	exp := d.Exponent()
	if exp >= 0 {
		return 0
	}
	return uint32(-exp)
}
