package sim

import "github.com/pkg/errors"

// DefaultMaxIterations bounds Stabilize and SettleWithDelay when no explicit
// bound is configured.
const DefaultMaxIterations = 1000

// Config groups the simulator parameters.
type Config struct {
	MaxIterations int  // propagation steps before stabilization gives up (must be > 0)
	TrailingRow   bool // record the final settled zero-delay row a second time, at t+1
}

// NewConfig creates a Config from explicit values. Zero values are kept as is.
func NewConfig(maxIterations int, trailingRow bool) Config {
	return Config{
		MaxIterations: maxIterations,
		TrailingRow:   trailingRow,
	}
}

// DefaultConfig returns the configuration used when nothing is overridden:
// a bound of DefaultMaxIterations and the trailing row enabled.
func DefaultConfig() Config {
	return NewConfig(DefaultMaxIterations, true)
}

// Validate checks that the configuration can drive a simulation.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "max_iterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}
