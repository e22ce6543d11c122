// Package bus is the engine's message bus collaborator: a synchronous
// fan-out pub/sub keyed by endpoint name, events are published to the
// endpoint resolved by the bus's switchboard name. Construction mirrors
// internal/events/broker.go (provider-style construction, one broker
// instance the application wires at startup) and
// internal/messaging/unified_dispatcher.go's Subscribe/GetSubscribers/
// dispatchSync path (handler registration and in-order synchronous
// delivery). The async queue, worker pool, and broadcast/round-robin
// dispatch modes those files also offer are deliberately not carried:
// the caller's next command cannot interleave with emitted events, so
// delivery must complete before Publish returns, which only the
// synchronous path guarantees.
package bus

import (
	"fmt"
	"sync"

	"github.com/tradsys-sim/matching-engine/internal/events"
)

// EndpointExecEngineProcess is the switchboard name the engine publishes to
// (§2 Data flow, §6).
const EndpointExecEngineProcess = "exec_engine.process"

// Handler receives events published to a subscribed endpoint.
type Handler interface {
	Handle(endpoint string, event events.Event)
}

// HandlerFunc adapts a plain function to a Handler.
type HandlerFunc func(endpoint string, event events.Event)

func (f HandlerFunc) Handle(endpoint string, event events.Event) { f(endpoint, event) }

// Bus is the narrow interface the engine depends on (§5 "interior-mutably
// accessible collaborator... borrowed mutably only for the duration of a
// single operation").
type Bus interface {
	Subscribe(endpoint string, handler Handler)
	Publish(endpoint string, event events.Event)
}

// InMemory is a synchronous, in-process Bus implementation.
type InMemory struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New creates an empty in-memory message bus.
func New() *InMemory {
	return &InMemory{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for an endpoint. Handlers fire in
// registration order.
func (b *InMemory) Subscribe(endpoint string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[endpoint] = append(b.handlers[endpoint], handler)
}

// Publish delivers event to every handler subscribed to endpoint, in
// registration order, before returning - giving the engine the in-order,
// non-interleaved emission §5 requires.
func (b *InMemory) Publish(endpoint string, event events.Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[endpoint]))
	copy(handlers, b.handlers[endpoint])
	b.mu.RUnlock()

	for _, h := range handlers {
		h.Handle(endpoint, event)
	}
}

// RecordingHandler is a test/demo handler that appends every event it
// receives, mirroring the codebase's message-saving test stub pattern.
type RecordingHandler struct {
	mu     sync.Mutex
	events []events.Event
}

// NewRecordingHandler creates a handler that stores every event it sees.
func NewRecordingHandler() *RecordingHandler {
	return &RecordingHandler{}
}

func (r *RecordingHandler) Handle(endpoint string, event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a snapshot of every event recorded so far, in order.
func (r *RecordingHandler) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Event, len(r.events))
	copy(out, r.events)
	return out
}

// String renders the recorded event kinds for debug output, e.g. in
// failed-test diagnostics: "OrderAccepted,OrderTriggered,OrderFilled".
func (r *RecordingHandler) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := ""
	for i, e := range r.events {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(e.Kind)
	}
	return s
}
