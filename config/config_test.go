package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/raceroute/config"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

const sample = `
routing:
  field_penalty: 5
  shared_penalty: 0.25
worker:
  count: 2
  metrics_addr: ":9100"
log:
  level: debug
  development: true
raceways:
  - id: T1
    start: [0, 0, 0]
    end: [40, 0, 0]
    width: 12
    height: 4
    group: power
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raceroute.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 5, cfg.Routing.FieldPenalty, 0)
	assert.InDelta(t, 0.25, cfg.Routing.SharedPenalty, 0)
	// Untouched keys keep defaults.
	assert.InDelta(t, route.DefaultProximityThreshold, cfg.Routing.ProximityThreshold, 0)
	assert.InDelta(t, route.DefaultJunctionTolerance, cfg.Routing.JunctionTolerance, 0)
	assert.Equal(t, 64, cfg.Worker.QueueSize)

	assert.Equal(t, 2, cfg.Worker.Count)
	assert.Equal(t, ":9100", cfg.Worker.MetricsAddr)
	assert.Equal(t, "debug", cfg.Log.Level)

	require.Len(t, cfg.Raceways, 1)
	assert.Equal(t, geom.Point{40, 0, 0}, cfg.Raceways[0].End)
	assert.Equal(t, "power", cfg.Raceways[0].Group)

	logger, err := cfg.Log.Logger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, route.DefaultOptions(), cfg.Routing)
	require.NoError(t, cfg.Validate())

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	_, err := config.Parse([]byte("routing:\n  fill_limit: 1.5\n"))
	require.ErrorIs(t, err, route.ErrBadOptions)

	_, err = config.Parse([]byte("worker:\n  count: 0\n"))
	require.ErrorIs(t, err, config.ErrBadConfig)

	_, err = config.Parse([]byte("log:\n  level: loud\n"))
	require.ErrorIs(t, err, config.ErrBadConfig)

	_, err = config.Parse([]byte("routing: [1, 2"))
	require.Error(t, err)
}
