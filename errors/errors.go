package errors

import "fmt"

// ConfigError wraps a specific validation error with the offending field and value.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config field %s: %v (value: %v)", e.Field, e.Err, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrNonPositiveRate     = fmt.Errorf("arrival rate must be positive")
	ErrNonPositiveService  = fmt.Errorf("mean service time must be positive")
	ErrNonPositiveAgents   = fmt.Errorf("agent count must be positive")
	ErrAgentOrder          = fmt.Errorf("simplified agent count must be at least the full agent count")
	ErrThresholdOrder      = fmt.Errorf("threshold-to-base must be below threshold-to-simplify")
	ErrNegativeThreshold   = fmt.Errorf("queue threshold must not be negative")
	ErrNegativeHorizon     = fmt.Errorf("simulation horizon must not be negative")
	ErrNegativeAlpha       = fmt.Errorf("alpha must not be negative")
	ErrNonPositiveBaseline = fmt.Errorf("QoE baseline must be positive")
	ErrNonPositiveInterval = fmt.Errorf("sampling interval must be positive")
	ErrEmptySweep          = fmt.Errorf("sweep requires at least one arrival rate and one threshold")
)
