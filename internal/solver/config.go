package solver

import "fmt"

const DefaultMaxProbeIterations = 10000

type Config struct {
	// Horizon is the latest admissible start. Zero means unbounded.
	Horizon int64 `json:"horizon"`

	// MaxProbeIterations bounds the common start tightening loop of one task.
	MaxProbeIterations int `json:"max_probe_iterations"`
}

func (c *Config) SetDefaults() {
	if c.MaxProbeIterations == 0 {
		c.MaxProbeIterations = DefaultMaxProbeIterations
	}
}

func (c Config) Validate() error {
	if c.Horizon < 0 {
		return fmt.Errorf("solver horizon must not be negative, got %d", c.Horizon)
	}

	if c.MaxProbeIterations < 1 {
		return fmt.Errorf("solver max_probe_iterations must be positive, got %d", c.MaxProbeIterations)
	}

	return nil
}
