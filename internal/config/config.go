// Package config holds the matching engine's own configuration (C8), in
// the YAML-tagged config-struct idiom used elsewhere in this codebase
// (internal/config/unified.go's UnifiedConfig shape), narrowed from that
// file's many cross-cutting sections down to the handful of fields the
// engine needs.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig governs matching-engine behavior (§6).
type EngineConfig struct {
	// BarExecution permits synthesizing trades from bar data for matching.
	BarExecution bool `yaml:"bar_execution"`

	// RejectStopOrders, when true, rejects stop orders already triggered at
	// admission instead of treating them as immediately triggered (§4.4).
	RejectStopOrders bool `yaml:"reject_stop_orders"`

	// SupportGtdOrders, when false, rejects GTD time-in-force at admission.
	SupportGtdOrders bool `yaml:"support_gtd_orders"`

	// SupportContingentOrders, when false, drops contingency links and
	// treats every order as independent (§4.6).
	SupportContingentOrders bool `yaml:"support_contingent_orders"`

	// UsePositionIds attaches position ids to fill events.
	UsePositionIds bool `yaml:"use_position_ids"`

	// UseRandomIds selects UUIDs over a sequential counter for generated
	// trade/venue ids (§9 Deterministic IDs).
	UseRandomIds bool `yaml:"use_random_ids"`

	// UseReduceOnly enforces reduce-only semantics; if false, an order's
	// reduce_only flag is ignored by the Validator (§4.3.6).
	UseReduceOnly bool `yaml:"use_reduce_only"`
}

// Option mutates an EngineConfig during construction.
type Option func(*EngineConfig)

// Default returns the engine's default configuration: GTD support,
// contingent-order support and reduce-only enforcement on, everything else
// off, matching a conservative
// venue that doesn't reject stops or use random ids unless asked.
func Default() EngineConfig {
	return EngineConfig{
		SupportGtdOrders:        true,
		SupportContingentOrders: true,
		UseReduceOnly:           true,
	}
}

// New builds an EngineConfig starting from Default and applying opts.
func New(opts ...Option) EngineConfig {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithBarExecution(v bool) Option            { return func(c *EngineConfig) { c.BarExecution = v } }
func WithRejectStopOrders(v bool) Option        { return func(c *EngineConfig) { c.RejectStopOrders = v } }
func WithSupportGtdOrders(v bool) Option        { return func(c *EngineConfig) { c.SupportGtdOrders = v } }
func WithSupportContingentOrders(v bool) Option {
	return func(c *EngineConfig) { c.SupportContingentOrders = v }
}
func WithUsePositionIds(v bool) Option { return func(c *EngineConfig) { c.UsePositionIds = v } }
func WithUseRandomIds(v bool) Option   { return func(c *EngineConfig) { c.UseRandomIds = v } }
func WithUseReduceOnly(v bool) Option  { return func(c *EngineConfig) { c.UseReduceOnly = v } }

// Load reads an EngineConfig from a YAML file at path, starting from Default
// so an omitted field keeps its documented default rather than zeroing out.
func Load(path string) (EngineConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}
