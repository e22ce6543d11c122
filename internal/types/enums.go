// Package types holds the venue's domain model: instruments, orders, and the
// enumerations the matching engine switches on. Adapted from
// internal/trading/types/order.go and internal/trading/types/asset.go,
// generalized to the full order-type/time-in-force/contingency surface the
// engine needs and ported from float64 to decimal.Decimal for exact
// precision comparisons.
package types

// OrderSide is the side of an order or book delta.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

// Opposite returns the other side.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

// OrderType is the kind of order the engine must price and trigger.
type OrderType string

const (
	OrderTypeMarket            OrderType = "MARKET"
	OrderTypeLimit             OrderType = "LIMIT"
	OrderTypeStopMarket        OrderType = "STOP_MARKET"
	OrderTypeStopLimit         OrderType = "STOP_LIMIT"
	OrderTypeMarketIfTouched   OrderType = "MARKET_IF_TOUCHED"
	OrderTypeLimitIfTouched    OrderType = "LIMIT_IF_TOUCHED"
	OrderTypeTrailingStopMkt   OrderType = "TRAILING_STOP_MARKET"
	OrderTypeTrailingStopLimit OrderType = "TRAILING_STOP_LIMIT"
)

// HasLimitPrice reports whether the order type carries a limit price.
func (t OrderType) HasLimitPrice() bool {
	switch t {
	case OrderTypeLimit, OrderTypeStopLimit, OrderTypeLimitIfTouched, OrderTypeTrailingStopLimit:
		return true
	default:
		return false
	}
}

// HasTriggerPrice reports whether the order type carries a stop/touch trigger.
func (t OrderType) HasTriggerPrice() bool {
	switch t {
	case OrderTypeStopMarket, OrderTypeStopLimit, OrderTypeMarketIfTouched,
		OrderTypeLimitIfTouched, OrderTypeTrailingStopMkt, OrderTypeTrailingStopLimit:
		return true
	default:
		return false
	}
}

// IsStopType reports whether triggering compares against the opposite top-of-book.
func (t OrderType) IsStopType() bool {
	return t == OrderTypeStopMarket || t == OrderTypeStopLimit ||
		t == OrderTypeTrailingStopMkt || t == OrderTypeTrailingStopLimit
}

// IsTouchType reports whether triggering compares against the same-side top-of-book.
func (t OrderType) IsTouchType() bool {
	return t == OrderTypeMarketIfTouched || t == OrderTypeLimitIfTouched
}

// TimeInForce governs how long an order rests and how partial fills behave.
type TimeInForce string

const (
	TimeInForceGTC        TimeInForce = "GTC"
	TimeInForceGTD        TimeInForce = "GTD"
	TimeInForceIOC        TimeInForce = "IOC"
	TimeInForceFOK        TimeInForce = "FOK"
	TimeInForceAtTheOpen  TimeInForce = "AT_THE_OPEN"
	TimeInForceAtTheClose TimeInForce = "AT_THE_CLOSE"
)

// OrderStatus is the order's position in the C2 state machine.
type OrderStatus string

const (
	OrderStatusInitialized    OrderStatus = "INITIALIZED"
	OrderStatusSubmitted      OrderStatus = "SUBMITTED"
	OrderStatusAccepted       OrderStatus = "ACCEPTED"
	OrderStatusPendingUpdate  OrderStatus = "PENDING_UPDATE"
	OrderStatusPendingCancel  OrderStatus = "PENDING_CANCEL"
	OrderStatusTriggered      OrderStatus = "TRIGGERED"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusRejected       OrderStatus = "REJECTED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
	OrderStatusExpired        OrderStatus = "EXPIRED"
	OrderStatusFilled         OrderStatus = "FILLED"
	OrderStatusDenied         OrderStatus = "DENIED"
)

// IsClosed reports whether the status is terminal (§3 Invariants).
func (s OrderStatus) IsClosed() bool {
	switch s {
	case OrderStatusRejected, OrderStatusCanceled, OrderStatusExpired, OrderStatusFilled, OrderStatusDenied:
		return true
	default:
		return false
	}
}

// ContingencyType is the linkage kind between related orders.
type ContingencyType string

const (
	ContingencyNone ContingencyType = ""
	ContingencyOTO  ContingencyType = "OTO"
	ContingencyOCO  ContingencyType = "OCO"
	ContingencyOUO  ContingencyType = "OUO"
)

// AccountType governs validator rules that differ by account (§4.3.5).
type AccountType string

const (
	AccountTypeCash    AccountType = "CASH"
	AccountTypeMargin  AccountType = "MARGIN"
	AccountTypeBetting AccountType = "BETTING"
)

// OmsType governs whether fills net into one position or open separate ones.
type OmsType string

const (
	OmsTypeNetting OmsType = "NETTING"
	OmsTypeHedging OmsType = "HEDGING"
)

// BookType is the depth of book the engine maintains (§6).
type BookType string

const (
	BookTypeL1MBP BookType = "L1_MBP"
	BookTypeL2MBP BookType = "L2_MBP"
	BookTypeL3MBO BookType = "L3_MBO"
)

// LiquiditySide tags a fill as resting (maker) or aggressing (taker) liquidity.
type LiquiditySide string

const (
	LiquiditySideMaker LiquiditySide = "MAKER"
	LiquiditySideTaker LiquiditySide = "TAKER"
)

// BookAction is the kind of mutation an order-book delta carries (§4.1).
type BookAction string

const (
	BookActionAdd    BookAction = "ADD"
	BookActionUpdate BookAction = "UPDATE"
	BookActionDelete BookAction = "DELETE"
	BookActionClear  BookAction = "CLEAR"
)
