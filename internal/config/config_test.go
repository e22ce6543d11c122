package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEnablesGtdAndContingentAndReduceOnly(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.SupportGtdOrders)
	assert.True(t, cfg.SupportContingentOrders)
	assert.True(t, cfg.UseReduceOnly)
	assert.False(t, cfg.BarExecution)
	assert.False(t, cfg.RejectStopOrders)
	assert.False(t, cfg.UsePositionIds)
	assert.False(t, cfg.UseRandomIds)
}

func TestNewAppliesOptionsOverDefaults(t *testing.T) {
	cfg := New(
		WithRejectStopOrders(true),
		WithSupportGtdOrders(false),
		WithUsePositionIds(true),
		WithUseRandomIds(true),
	)

	assert.True(t, cfg.RejectStopOrders)
	assert.False(t, cfg.SupportGtdOrders)
	assert.True(t, cfg.UsePositionIds)
	assert.True(t, cfg.UseRandomIds)
	assert.True(t, cfg.SupportContingentOrders, "options not overridden keep their default")
}

func TestLoadOverlaysYamlOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reject_stop_orders: true\nuse_random_ids: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.RejectStopOrders)
	assert.True(t, cfg.UseRandomIds)
	assert.True(t, cfg.SupportGtdOrders, "fields absent from the file keep the Default() value")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
