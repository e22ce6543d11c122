package types

import "github.com/shopspring/decimal"

// InstrumentId identifies an instrument, e.g. "ESZ21.GLBX" or "ETHUSDT-PERP.BINANCE".
type InstrumentId string

// Instrument carries the immutable attributes the validator and matching
// core need: precision, tick size, and the activation/expiration window.
// Adapted from internal/trading/types/asset.go's Asset struct, narrowed to
// the fields the engine needs and widened with the optional
// activation/expiration timestamps contract lifecycle checks require.
type Instrument struct {
	Id             InstrumentId
	PricePrecision uint32
	SizePrecision  uint32
	QuoteCurrency  string
	TickSize       decimal.Decimal
	// ActivationNs and ExpirationNs are Unix nanosecond timestamps; zero
	// means "no constraint" on that side of the window.
	ActivationNs int64
	ExpirationNs int64
}

// HasActivation reports whether the instrument enforces an activation window.
func (i Instrument) HasActivation() bool { return i.ActivationNs > 0 }

// HasExpiration reports whether the instrument enforces an expiration window.
func (i Instrument) HasExpiration() bool { return i.ExpirationNs > 0 }

// PriceDecimals returns the number of decimal places required of prices.
func (i Instrument) PriceDecimals() int32 { return int32(i.PricePrecision) }

// SizeDecimals returns the number of decimal places required of quantities.
func (i Instrument) SizeDecimals() int32 { return int32(i.SizePrecision) }
