// Package metrics records solve runs. PromSink exposes them as Prometheus
// collectors which the CLI can dump to a node exporter textfile.
package metrics

import (
	"fmt"
	"time"
)

const DefaultNamespace = "scheduler"

type Config struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`

	// Textfile is where the CLI writes the registry after a run. Empty skips it.
	Textfile string `json:"textfile"`
}

func (c *Config) SetDefaults() {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
}

func (c Config) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return fmt.Errorf("metrics namespace required when enabled")
	}

	return nil
}

// RunStats is what one engine run reports.
type RunStats struct {
	RunID string

	// FailedByReason counts failed tasks per reason label.
	FailedByReason map[string]int

	Duration time.Duration

	Makespan   int64
	LowerBound int64

	Tasks     int
	Scheduled int
	Probes    int
}

// Sink receives run statistics.
type Sink interface {
	RecordRun(stats RunStats) error
	RecordError(stage string) error
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) RecordRun(RunStats) error { return nil }
func (NopSink) RecordError(string) error { return nil }
