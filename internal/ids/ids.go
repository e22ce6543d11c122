// Package ids generates venue-order-ids, trade-ids, and event-ids.
// Deterministic IDs: when use_random_ids=false, each engine holds a
// monotonic 64-bit counter seeded by its raw-id; UUIDs only appear when
// explicitly configured. Grounded on
// internal/orders/matching/engine_core.go's `uuid.New().String()` call site,
// generalized to a Generator interface so the engine can swap in the
// deterministic counter needed for test determinism.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces venue-order-ids, trade-ids, and event-ids.
type Generator interface {
	VenueOrderId() string
	TradeId() string
	EventId() string
}

// Random generates UUIDs for every id kind (use_random_ids=true).
type Random struct{}

func (Random) VenueOrderId() string { return uuid.New().String() }
func (Random) TradeId() string      { return uuid.New().String() }
func (Random) EventId() string      { return uuid.New().String() }

// Sequential generates deterministic, monotonically increasing ids seeded
// by a raw-id, for reproducible tests (use_random_ids=false).
type Sequential struct {
	rawId   uint64
	venue   atomic.Uint64
	trade   atomic.Uint64
	event   atomic.Uint64
}

// NewSequential creates a deterministic generator seeded by rawId.
func NewSequential(rawId uint64) *Sequential {
	return &Sequential{rawId: rawId}
}

func (s *Sequential) VenueOrderId() string {
	n := s.venue.Add(1)
	return fmt.Sprintf("O-%d-%d", s.rawId, n)
}

func (s *Sequential) TradeId() string {
	n := s.trade.Add(1)
	return fmt.Sprintf("T-%d-%d", s.rawId, n)
}

func (s *Sequential) EventId() string {
	n := s.event.Add(1)
	return fmt.Sprintf("E-%d-%d", s.rawId, n)
}

// New returns a Generator for rawId, random if useRandomIds is set,
// otherwise the deterministic sequential generator (§6 use_random_ids).
func New(rawId uint64, useRandomIds bool) Generator {
	if useRandomIds {
		return Random{}
	}
	return NewSequential(rawId)
}
