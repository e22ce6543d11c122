// Package metrics reports the engine's order-flow counters and fill-latency
// histogram (C9 Observability - metrics half) through
// github.com/prometheus/client_golang.
//
// Grounded on internal/monitoring/metrics.go's MetricsCollector: a struct of
// promauto-constructed CounterVec/HistogramVec fields plus one Record method
// per domain event (RecordOrderCreated/Filled/Cancelled/Rejected). Narrowed
// to the four order-flow counters and the one latency histogram an engine
// instance produces, and generalized from "one process-wide collector
// registered against the default registry" to "one collector per engine
// instance, each backed by its own *prometheus.Registry" - an Engine is
// constructed per instrument (§5), and sharing the default registry across
// instruments would double-register identical metric names the moment a
// second instrument's engine starts up.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the counters and histogram one engine instance reports
// through. Not safe for concurrent use beyond what the underlying
// prometheus vectors already guarantee.
type Collector struct {
	registry *prometheus.Registry

	ordersSubmitted *prometheus.CounterVec
	ordersFilled    *prometheus.CounterVec
	ordersCanceled  *prometheus.CounterVec
	ordersRejected  *prometheus.CounterVec
	fillLatency     *prometheus.HistogramVec
}

// NewCollector builds a Collector backed by its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		ordersSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matching_engine_orders_submitted_total",
			Help: "Total number of orders submitted to the engine.",
		}, []string{"instrument", "side", "type"}),
		ordersFilled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matching_engine_orders_filled_total",
			Help: "Total number of fill events emitted by the engine.",
		}, []string{"instrument", "side", "type"}),
		ordersCanceled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matching_engine_orders_canceled_total",
			Help: "Total number of orders canceled by the engine.",
		}, []string{"instrument", "side", "type"}),
		ordersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matching_engine_orders_rejected_total",
			Help: "Total number of orders rejected by the engine.",
		}, []string{"instrument", "side", "type"}),
		fillLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matching_engine_fill_latency_seconds",
			Help:    "Time between an order's submission and each fill it receives.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 10), // 100µs to ~51ms
		}, []string{"instrument"}),
	}
}

// Registry exposes the collector's registry so a caller can serve it over
// an HTTP /metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// RecordSubmitted increments the submitted-orders counter.
func (c *Collector) RecordSubmitted(instrument, side, orderType string) {
	c.ordersSubmitted.WithLabelValues(instrument, side, orderType).Inc()
}

// RecordFilled increments the filled-orders counter and, if latencyNs is
// non-negative, observes it (in seconds) in the fill-latency histogram.
func (c *Collector) RecordFilled(instrument, side, orderType string, latencyNs int64) {
	c.ordersFilled.WithLabelValues(instrument, side, orderType).Inc()
	if latencyNs >= 0 {
		c.fillLatency.WithLabelValues(instrument).Observe(float64(latencyNs) / 1e9)
	}
}

// RecordCanceled increments the canceled-orders counter.
func (c *Collector) RecordCanceled(instrument, side, orderType string) {
	c.ordersCanceled.WithLabelValues(instrument, side, orderType).Inc()
}

// RecordRejected increments the rejected-orders counter.
func (c *Collector) RecordRejected(instrument, side, orderType string) {
	c.ordersRejected.WithLabelValues(instrument, side, orderType).Inc()
}
