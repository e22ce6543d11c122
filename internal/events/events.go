// Package events defines the order lifecycle events the engine emits.
// Every event is a tagged variant over EventKind carrying a common
// envelope plus kind-specific fields, mirroring the tagged-message shape
// in internal/messaging/message.go (StandardMessage + typed embeds like
// OrderMessage/ErrorMessage) adapted from "one struct type with an
// embedded base" to a single flat struct switched on Kind, since every
// field the engine emits is known up front (a closed set of ten event
// kinds, not an open message catalogue).
package events

import (
	"github.com/shopspring/decimal"

	"github.com/tradsys-sim/matching-engine/internal/types"
)

// Kind identifies the event variant (§1).
type Kind string

const (
	KindSubmitted       Kind = "OrderSubmitted"
	KindAccepted        Kind = "OrderAccepted"
	KindRejected        Kind = "OrderRejected"
	KindTriggered       Kind = "OrderTriggered"
	KindUpdated         Kind = "OrderUpdated"
	KindCanceled        Kind = "OrderCanceled"
	KindExpired         Kind = "OrderExpired"
	KindFilled          Kind = "OrderFilled"
	KindCancelRejected  Kind = "OrderCancelRejected"
	KindModifyRejected  Kind = "OrderModifyRejected"
)

// Event is the envelope every emitted event carries (§6 "Every event emitted
// carries..."), plus the handful of type-specific fields used across the
// ten kinds.
type Event struct {
	Kind Kind

	TraderId      string
	StrategyId    string
	InstrumentId  types.InstrumentId
	ClientOrderId types.ClientOrderId
	VenueOrderId  types.VenueOrderId // empty until assigned
	AccountId     string

	EventId string
	TsEvent int64
	TsInit  int64

	Reconciliation bool // always false from this engine (§6)

	// Rejection/cancel-rejection/modify-rejection reason text (§4.3-§4.5).
	Reason string

	// Trigger/update fields.
	Price        decimal.Decimal
	TriggerPrice decimal.Decimal
	Quantity     decimal.Decimal

	// Fill fields (§4.4 "Walking the book").
	LastQty       decimal.Decimal
	LastPx        decimal.Decimal
	LiquiditySide types.LiquiditySide
	TradeId       string
	PositionId    string // empty unless use_position_ids
}
