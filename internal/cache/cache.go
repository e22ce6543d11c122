// Package cache implements the order cache collaborator the engine
// consumes: add_order, update_order, get_order(cid), open_orders
// (instrument_id, side?). The engine is merely handed this collaborator,
// but a concrete implementation is built here so the engine is runnable
// and testable standalone.
//
// Grounded on internal/trading/mitigation/cache.go's entry/TTL/eviction
// shape, generalized from "string key -> arbitrary value with TTL eviction"
// to "ClientOrderId -> *Order with insertion-order iteration", and backed
// by github.com/patrickmn/go-cache for the underlying expiring store since
// go-cache already implements exactly the janitor-based TTL eviction that
// shape calls for. go-cache has no ordered iteration, so an
// insertion-ordered open-order index - insertion order is the cancel-all
// and expiry-sweep iteration order - is maintained alongside it.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/tradsys-sim/matching-engine/internal/types"
)

// ClosedOrderRetention is how long a closed order remains queryable via
// GetOrder after it leaves the open set.
const ClosedOrderRetention = 5 * time.Minute

// Cache is the order cache consumed by the engine.
type Cache struct {
	mu sync.Mutex

	store *gocache.Cache // ClientOrderId(string) -> *types.Order, all entries

	// openOrder preserves insertion order of currently-open orders per
	// instrument, independent of the underlying store's hash-map iteration.
	openOrder map[types.InstrumentId][]types.ClientOrderId
}

// New creates an empty order cache.
func New() *Cache {
	return &Cache{
		store:     gocache.New(gocache.NoExpiration, time.Minute),
		openOrder: make(map[types.InstrumentId][]types.ClientOrderId),
	}
}

// AddOrder admits a new order into the cache's open set.
func (c *Cache) AddOrder(o *types.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.Set(string(o.ClientOrderId), o, gocache.NoExpiration)
	if !o.IsClosed() {
		c.openOrder[o.InstrumentId] = append(c.openOrder[o.InstrumentId], o.ClientOrderId)
	}
}

// UpdateOrder refreshes a cached order's state. If the order has just
// closed it is dropped from the open-order index (but kept queryable for
// ClosedOrderRetention via the TTL'd store entry).
func (c *Cache) UpdateOrder(o *types.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.IsClosed() {
		c.store.Set(string(o.ClientOrderId), o, ClosedOrderRetention)
		c.removeFromOpenIndexLocked(o.InstrumentId, o.ClientOrderId)
	} else {
		c.store.Set(string(o.ClientOrderId), o, gocache.NoExpiration)
	}
}

// GetOrder returns the order for a client-order-id, if cached.
func (c *Cache) GetOrder(cid types.ClientOrderId) (*types.Order, bool) {
	v, ok := c.store.Get(string(cid))
	if !ok {
		return nil, false
	}
	return v.(*types.Order), true
}

// OpenOrders returns the open orders for an instrument, optionally filtered
// by side, in insertion order (§3 Core-Owned Registries / §4.5 CancelAll).
func (c *Cache) OpenOrders(instrumentId types.InstrumentId, side *types.OrderSide) []*types.Order {
	c.mu.Lock()
	cids := append([]types.ClientOrderId(nil), c.openOrder[instrumentId]...)
	c.mu.Unlock()

	out := make([]*types.Order, 0, len(cids))
	for _, cid := range cids {
		o, ok := c.GetOrder(cid)
		if !ok || o.IsClosed() {
			continue
		}
		if side != nil && o.Side != *side {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (c *Cache) removeFromOpenIndexLocked(instrumentId types.InstrumentId, cid types.ClientOrderId) {
	list := c.openOrder[instrumentId]
	for i, id := range list {
		if id == cid {
			c.openOrder[instrumentId] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
