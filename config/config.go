// Package config defines the simulation scenario parameters and their YAML
// loading. Validation is fail-fast: no run starts with an invalid scenario.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"qoe-simulator/errors"
)

// Config holds every scalar parameter of a sweep scenario.
type Config struct {
	// SimTime is the simulated horizon of one run, in time units.
	SimTime float64 `yaml:"sim_time"`
	// NumAgentsFull is the available-agent limit under the full model.
	NumAgentsFull int `yaml:"num_agents_full"`
	// NumAgentsSimplified is the available-agent limit under the simplified
	// model. It is also the pool's raw capacity.
	NumAgentsSimplified int `yaml:"num_agents_simplified"`
	// AvgProcessingTime is the mean of the exponential service duration.
	AvgProcessingTime float64 `yaml:"avg_processing_time"`
	// ThresholdToBase is the queue length at or below which the controller
	// may switch back to the full model.
	ThresholdToBase int `yaml:"threshold_to_base"`
	// QoEFullBase and QoESimplifiedBase are the per-mode QoE baselines.
	QoEFullBase       float64 `yaml:"qoe_full_base"`
	QoESimplifiedBase float64 `yaml:"qoe_simplified_base"`
	// Alpha scales how strongly waiting time degrades QoE.
	Alpha float64 `yaml:"alpha"`
	// SampleInterval is the period of the mode controller and QoE monitor.
	SampleInterval float64 `yaml:"sample_interval"`

	// ArrivalRates and QueueThresholds define the sweep grid.
	ArrivalRates    []float64 `yaml:"arrival_rates"`
	QueueThresholds []int     `yaml:"queue_thresholds"`

	// Seed is the base seed; each run derives its own from it.
	Seed int64 `yaml:"seed"`
}

// Default returns the reference scenario: arrival rates 0.1 to 0.9 in steps
// of 0.1 followed by 1 to 20, thresholds {1, 3, 5, 7, 10}.
func Default() Config {
	rates := make([]float64, 0, 29)
	for i := 1; i < 10; i++ {
		rates = append(rates, 0.1*float64(i))
	}
	for i := 1; i <= 20; i++ {
		rates = append(rates, float64(i))
	}

	return Config{
		SimTime:             1000,
		NumAgentsFull:       10,
		NumAgentsSimplified: 20,
		AvgProcessingTime:   1,
		ThresholdToBase:     0,
		QoEFullBase:         1.0,
		QoESimplifiedBase:   0.8,
		Alpha:               0.05,
		SampleInterval:      1,
		ArrivalRates:        rates,
		QueueThresholds:     []int{1, 3, 5, 7, 10},
		Seed:                1,
	}
}

// Load reads a YAML scenario file on top of the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading scenario file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing scenario file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every parameter the simulation relies on. It returns the
// first violation as a ConfigError.
func (c Config) Validate() error {
	if c.SimTime < 0 {
		return &errors.ConfigError{Field: "sim_time", Value: c.SimTime, Err: errors.ErrNegativeHorizon}
	}
	if c.NumAgentsFull <= 0 {
		return &errors.ConfigError{Field: "num_agents_full", Value: c.NumAgentsFull, Err: errors.ErrNonPositiveAgents}
	}
	if c.NumAgentsSimplified <= 0 {
		return &errors.ConfigError{Field: "num_agents_simplified", Value: c.NumAgentsSimplified, Err: errors.ErrNonPositiveAgents}
	}
	if c.NumAgentsSimplified < c.NumAgentsFull {
		return &errors.ConfigError{Field: "num_agents_simplified", Value: c.NumAgentsSimplified, Err: errors.ErrAgentOrder}
	}
	if c.AvgProcessingTime <= 0 {
		return &errors.ConfigError{Field: "avg_processing_time", Value: c.AvgProcessingTime, Err: errors.ErrNonPositiveService}
	}
	if c.Alpha < 0 {
		return &errors.ConfigError{Field: "alpha", Value: c.Alpha, Err: errors.ErrNegativeAlpha}
	}
	if c.QoEFullBase <= 0 {
		return &errors.ConfigError{Field: "qoe_full_base", Value: c.QoEFullBase, Err: errors.ErrNonPositiveBaseline}
	}
	if c.QoESimplifiedBase <= 0 {
		return &errors.ConfigError{Field: "qoe_simplified_base", Value: c.QoESimplifiedBase, Err: errors.ErrNonPositiveBaseline}
	}
	if c.SampleInterval <= 0 {
		return &errors.ConfigError{Field: "sample_interval", Value: c.SampleInterval, Err: errors.ErrNonPositiveInterval}
	}
	if len(c.ArrivalRates) == 0 || len(c.QueueThresholds) == 0 {
		return &errors.ConfigError{Field: "arrival_rates/queue_thresholds", Value: nil, Err: errors.ErrEmptySweep}
	}
	for _, rate := range c.ArrivalRates {
		if rate <= 0 {
			return &errors.ConfigError{Field: "arrival_rates", Value: rate, Err: errors.ErrNonPositiveRate}
		}
	}
	for _, threshold := range c.QueueThresholds {
		if threshold < 0 {
			return &errors.ConfigError{Field: "queue_thresholds", Value: threshold, Err: errors.ErrNegativeThreshold}
		}
		if c.ThresholdToBase >= threshold {
			return &errors.ConfigError{Field: "threshold_to_base", Value: c.ThresholdToBase, Err: errors.ErrThresholdOrder}
		}
	}
	return nil
}
