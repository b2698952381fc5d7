package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/google/uuid"

	"github.com/TudorHulban/taskscheduler/internal/domain"
	"github.com/TudorHulban/taskscheduler/internal/graph"
	"github.com/TudorHulban/taskscheduler/internal/logger"
	"github.com/TudorHulban/taskscheduler/internal/metrics"
	"github.com/TudorHulban/taskscheduler/internal/result"
	"github.com/TudorHulban/taskscheduler/internal/solver"
)

// Error stages reported to the metrics sink.
const (
	StageInput      = "invalid_input"
	StageStructural = "structural"
	StageInternal   = "internal"
)

type ParamsNew struct {
	Logger  logger.Logger
	Metrics metrics.Sink

	Config solver.Config
}

// Engine runs the whole pipeline: index, graph, normalize, solve, report.
type Engine struct {
	log    logger.Logger
	sink   metrics.Sink
	solver *solver.Solver
}

func New(params *ParamsNew) (*Engine, error) {
	if params == nil {
		return nil,
			goerrors.ErrNilInput{
				InputName: "ParamsNew",
			}
	}

	log := params.Logger
	if log == nil {
		log = logger.NopLogger{}
	}

	sink := params.Metrics
	if sink == nil {
		sink = metrics.NopSink{}
	}

	s, errSolver := solver.New(
		&solver.ParamsNew{
			Logger: log,
			Config: params.Config,
		},
	)
	if errSolver != nil {
		return nil,
			errSolver
	}

	return &Engine{
			log:    log,
			sink:   sink,
			solver: s,
		},
		nil
}

// Order returns the deterministic processing order of the tasks.
func (e *Engine) Order(tasks []*domain.Task) ([]string, error) {
	g, errBuild := graph.Build(tasks)
	if errBuild != nil {
		return nil,
			errBuild
	}

	return g.Order(),
		nil
}

// Schedule computes one schedule. Structural and input errors are returned
// before any calendar is touched. Every resource calendar is reset, so
// bookings of earlier runs on the same resources do not carry over.
func (e *Engine) Schedule(ctx context.Context, tasks []*domain.Task, resources []*domain.Resource) (*result.Schedule, error) {
	if errCtx := ctx.Err(); errCtx != nil {
		return nil,
			errCtx
	}

	runID := uuid.NewString()
	started := time.Now()

	log := e.log.With("run", runID)
	log.Infof("%d tasks, %d resources", len(tasks), len(resources))

	catalogue, errIndex := domain.IndexResources(resources)
	if errIndex != nil {
		return nil,
			e.abort(log, runID, StageInput, errIndex)
	}

	g, errBuild := graph.Build(tasks)
	if errBuild != nil {
		return nil,
			e.abort(log, runID, StageStructural, errBuild)
	}

	for _, task := range tasks {
		if errCheck := task.CheckResources(catalogue); errCheck != nil {
			return nil,
				e.abort(log, runID, StageInput, errCheck)
		}
	}

	for _, resource := range resources {
		resource.Reset()
		resource.Calendar().Normalize()
	}

	outcome, errSolve := e.solver.Solve(g, catalogue)
	if errSolve != nil {
		return nil,
			e.abort(log, runID, StageInternal, errSolve)
	}

	schedule, errSchedule := result.NewSchedule(
		&result.ParamsNewSchedule{
			Outcome:   outcome,
			Graph:     g,
			Resources: catalogue,
			RunID:     runID,
		},
	)
	if errSchedule != nil {
		return nil,
			e.abort(log, runID, StageInternal, errSchedule)
	}

	stats := metrics.RunStats{
		RunID:          runID,
		Tasks:          len(tasks),
		Scheduled:      len(tasks) - len(schedule.FailedTasks()),
		FailedByReason: failedByReason(schedule),
		Makespan:       schedule.Makespan(),
		LowerBound:     schedule.LowerBound(),
		Probes:         schedule.Probes(),
		Duration:       time.Since(started),
	}

	if errRecord := e.sink.RecordRun(stats); errRecord != nil {
		log.Warnf("record metrics: %v", errRecord)
	}

	log.Infof(
		"makespan %d, %d scheduled, %d failed in %s",

		stats.Makespan,
		stats.Scheduled,
		len(tasks)-stats.Scheduled,
		stats.Duration,
	)
	log.Debugf("summary:\n%s", schedule.Summary())

	return schedule,
		nil
}

func (e *Engine) abort(log logger.Logger, runID, stage string, err error) error {
	log.Errorf("%s: %v", stage, err)

	if errRecord := e.sink.RecordError(stage); errRecord != nil {
		log.Warnf("record metrics: %v", errRecord)
	}

	return fmt.Errorf("run %s: %w", runID, err)
}

// ReasonLabel maps a failure reason to a short metrics label.
func ReasonLabel(reason error) string {
	switch {
	case errors.Is(reason, solver.ErrBlocked):
		return "blocked"
	case errors.Is(reason, solver.ErrHorizonExceeded):
		return "horizon"
	case errors.Is(reason, solver.ErrNoSlot):
		return "no_slot"
	}

	return "other"
}

func failedByReason(schedule *result.Schedule) map[string]int {
	counts := make(map[string]int)

	for _, id := range schedule.FailedTasks() {
		counts[ReasonLabel(schedule.Failure(id))]++
	}

	return counts
}
