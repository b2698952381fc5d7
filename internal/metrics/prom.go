package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records runs in Prometheus metrics.
type PromSink struct {
	runs      *prometheus.CounterVec
	tasks     *prometheus.CounterVec
	makespan  prometheus.Gauge
	bound     prometheus.Gauge
	duration  prometheus.Histogram
	probes    prometheus.Histogram
	lastRunTS prometheus.Gauge
}

// NewPromSink registers the collectors on reg, the default registerer when nil.
// Collectors already registered under the same name are reused.
func NewPromSink(cfg Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	cfg.SetDefaults()

	runs := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "runs_total",
			Help:      "Solve runs by outcome",
		},
		[]string{"outcome"},
	)

	tasks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "tasks_total",
			Help:      "Tasks resolved by status and failure reason",
		},
		[]string{"status", "reason"},
	)

	makespan := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "makespan",
			Help:      "Makespan of the last run in time units",
		},
	)

	bound := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "critical_path_lower_bound",
			Help:      "Precedence only lower bound of the last run",
		},
	)

	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of one run",
			Buckets:   prometheus.DefBuckets,
		},
	)

	probes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "probe_iterations",
			Help:      "Common start tightening iterations per run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	lastRunTS := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		},
	)

	var errRegister error

	runs = register(reg, runs, &errRegister)
	tasks = register(reg, tasks, &errRegister)
	makespan = register(reg, makespan, &errRegister)
	bound = register(reg, bound, &errRegister)
	duration = register(reg, duration, &errRegister)
	probes = register(reg, probes, &errRegister)
	lastRunTS = register(reg, lastRunTS, &errRegister)

	if errRegister != nil {
		return nil,
			errRegister
	}

	return &PromSink{
			runs:      runs,
			tasks:     tasks,
			makespan:  makespan,
			bound:     bound,
			duration:  duration,
			probes:    probes,
			lastRunTS: lastRunTS,
		},
		nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C, errFirst *error) C {
	if *errFirst != nil {
		return collector
	}

	errRegister := reg.Register(collector)
	if errRegister == nil {
		return collector
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(errRegister, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}

	*errFirst = errRegister

	return collector
}

func (s *PromSink) RecordRun(stats RunStats) error {
	s.runs.WithLabelValues("ok").Inc()

	for reason, count := range stats.FailedByReason {
		s.tasks.WithLabelValues("failed", reason).Add(float64(count))
	}

	s.tasks.WithLabelValues("scheduled", "").Add(float64(stats.Scheduled))

	s.makespan.Set(float64(stats.Makespan))
	s.bound.Set(float64(stats.LowerBound))
	s.duration.Observe(stats.Duration.Seconds())
	s.probes.Observe(float64(stats.Probes))
	s.lastRunTS.SetToCurrentTime()

	return nil
}

func (s *PromSink) RecordError(stage string) error {
	s.runs.WithLabelValues(stage).Inc()

	return nil
}
