package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qoe-simulator/config"
	apperrors "qoe-simulator/errors"
)

func TestDefaultScenario(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000.0, cfg.SimTime)
	assert.Equal(t, 10, cfg.NumAgentsFull)
	assert.Equal(t, 20, cfg.NumAgentsSimplified)
	assert.Equal(t, []int{1, 3, 5, 7, 10}, cfg.QueueThresholds)

	// 0.1..0.9 then 1..20
	require.Len(t, cfg.ArrivalRates, 29)
	assert.InDelta(t, 0.1, cfg.ArrivalRates[0], 1e-12)
	assert.InDelta(t, 0.9, cfg.ArrivalRates[8], 1e-12)
	assert.Equal(t, 1.0, cfg.ArrivalRates[9])
	assert.Equal(t, 20.0, cfg.ArrivalRates[28])
}

func TestValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*config.Config)
		wantErr error
	}{
		"NegativeHorizon":      {func(c *config.Config) { c.SimTime = -1 }, apperrors.ErrNegativeHorizon},
		"ZeroFullAgents":       {func(c *config.Config) { c.NumAgentsFull = 0 }, apperrors.ErrNonPositiveAgents},
		"ZeroSimplifiedAgents": {func(c *config.Config) { c.NumAgentsSimplified = 0 }, apperrors.ErrNonPositiveAgents},
		"SimplifiedBelowFull":  {func(c *config.Config) { c.NumAgentsSimplified = 5 }, apperrors.ErrAgentOrder},
		"ZeroServiceTime":      {func(c *config.Config) { c.AvgProcessingTime = 0 }, apperrors.ErrNonPositiveService},
		"NegativeAlpha":        {func(c *config.Config) { c.Alpha = -0.1 }, apperrors.ErrNegativeAlpha},
		"ZeroFullBaseline":     {func(c *config.Config) { c.QoEFullBase = 0 }, apperrors.ErrNonPositiveBaseline},
		"ZeroInterval":         {func(c *config.Config) { c.SampleInterval = 0 }, apperrors.ErrNonPositiveInterval},
		"NoRates":              {func(c *config.Config) { c.ArrivalRates = nil }, apperrors.ErrEmptySweep},
		"NoThresholds":         {func(c *config.Config) { c.QueueThresholds = nil }, apperrors.ErrEmptySweep},
		"ZeroRate":             {func(c *config.Config) { c.ArrivalRates = []float64{1, 0} }, apperrors.ErrNonPositiveRate},
		"NegativeThreshold":    {func(c *config.Config) { c.QueueThresholds = []int{-1} }, apperrors.ErrNegativeThreshold},
		"BaseAboveSimplify":    {func(c *config.Config) { c.ThresholdToBase = 3; c.QueueThresholds = []int{3} }, apperrors.ErrThresholdOrder},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)

			var cfgErr *apperrors.ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	scenario := `
sim_time: 500
num_agents_full: 4
num_agents_simplified: 8
arrival_rates: [0.5, 2]
queue_thresholds: [2, 4]
seed: 99
`
	require.NoError(t, os.WriteFile(path, []byte(scenario), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.SimTime)
	assert.Equal(t, 4, cfg.NumAgentsFull)
	assert.Equal(t, 8, cfg.NumAgentsSimplified)
	assert.Equal(t, []float64{0.5, 2}, cfg.ArrivalRates)
	assert.Equal(t, []int{2, 4}, cfg.QueueThresholds)
	assert.Equal(t, int64(99), cfg.Seed)

	// Untouched fields keep their defaults.
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, 1.0, cfg.QoEFullBase)
}

func TestLoadRejectsInvalidScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("avg_processing_time: -1\n"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNonPositiveService)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
