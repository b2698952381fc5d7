package solver

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
	"github.com/TudorHulban/taskscheduler/internal/domain"
	"github.com/TudorHulban/taskscheduler/internal/graph"
	"github.com/TudorHulban/taskscheduler/internal/logger"
)

type ParamsNew struct {
	Logger logger.Logger

	Config Config
}

// Solver is the greedy list scheduler.
// Each task in graph order goes to the earliest start all its demands share.
type Solver struct {
	log logger.Logger

	config Config
}

func New(params *ParamsNew) (*Solver, error) {
	if params == nil {
		return nil,
			goerrors.ErrNilInput{
				InputName: "ParamsNew",
			}
	}

	config := params.Config
	config.SetDefaults()

	if errValidation := config.Validate(); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Solver",
				Caller:      "New",
				Issue:       errValidation,
			}
	}

	log := params.Logger
	if log == nil {
		log = logger.NopLogger{}
	}

	return &Solver{
			log:    log,
			config: config,
		},
		nil
}

func (s *Solver) Config() Config {
	return s.config
}

// run is the per solve scratch area.
type run struct {
	resources map[string]*domain.Resource
	outcome   *Outcome
}

// Solve walks the graph order once. Resource calendars must be normalized,
// they are consumed as tasks get placed.
// Task failures land in the outcome, only inconsistencies are returned as errors.
func (s *Solver) Solve(g *graph.TaskGraph, resources map[string]*domain.Resource) (*Outcome, error) {
	order := g.Order()

	r := run{
		resources: resources,
		outcome: &Outcome{
			States: make(map[string]*TaskState, len(order)),
			Order:  order,
		},
	}

	for _, id := range order {
		r.outcome.States[id] = &TaskState{
			Status: StatusReady,
		}
	}

	for _, id := range order {
		task, _ := g.Task(id)

		if errPlace := s.place(&r, task, g.Predecessors(id)); errPlace != nil {
			return nil,
				errPlace
		}
	}

	return r.outcome,
		nil
}

func (s *Solver) place(r *run, task *domain.Task, predecessors []string) error {
	state := r.outcome.States[task.ID]
	state.Status = StatusAssigning

	earliest, blocked, errPredecessors := earliestStart(r, task, predecessors)
	if errPredecessors != nil {
		return errPredecessors
	}

	if blocked != "" {
		s.fail(state, task.ID, fmt.Errorf("%w: %s", ErrBlocked, blocked))

		return nil
	}

	if pastTimeRange(earliest, task.Duration) {
		s.fail(state, task.ID, timeRangeReason(earliest, task.Duration))

		return nil
	}

	found, errProbe := s.commonStart(r, task, earliest)
	if errProbe != nil {
		return errProbe
	}

	r.outcome.Probes = r.outcome.Probes + found.probes

	if found.reason != nil {
		s.fail(state, task.ID, found.reason)

		return nil
	}

	start, chosen := found.start, found.chosen

	if pastTimeRange(start, task.Duration) {
		s.fail(state, task.ID, timeRangeReason(start, task.Duration))

		return nil
	}

	// all or nothing: no calendar is booked unless every demand still fits.
	for ix, demand := range task.Demands {
		if !r.resources[chosen[ix]].Calendar().IsAvailableIn(
			calendar.TimeInterval{
				TimeStart: start,
				TimeEnd:   start + task.Duration,
			},
			max(demand.Quantity, 1),
		) {
			return fmt.Errorf(
				"%w: task %q lost its slot on %q at %d",

				ErrInternalConsistency,
				task.ID,
				chosen[ix],
				start,
			)
		}
	}

	for ix, demand := range task.Demands {
		if errConsume := r.resources[chosen[ix]].Calendar().Consume(
			start,
			start+task.Duration,
			max(demand.Quantity, 1),
		); errConsume != nil {
			return fmt.Errorf(
				"%w: task %q on %q: %w",

				ErrInternalConsistency,
				task.ID,
				chosen[ix],
				errConsume,
			)
		}
	}

	state.Status = StatusScheduled
	state.Assignment = &Assignment{
		TaskID:      task.ID,
		ResourceIDs: chosen,
		Start:       start,
		End:         start + task.Duration,
	}

	s.log.Debugw(
		"task scheduled",
		map[string]any{
			"task":      task.ID,
			"start":     start,
			"end":       start + task.Duration,
			"resources": chosen,
			"probes":    found.probes,
		},
	)

	return nil
}

func (s *Solver) fail(state *TaskState, taskID string, reason error) {
	state.Status = StatusFailed
	state.Reason = reason

	s.log.Debugw(
		"task failed",
		map[string]any{
			"task":   taskID,
			"reason": reason.Error(),
		},
	)
}

// earliestStart returns the precedence bound of a task, or the first failed predecessor.
func earliestStart(r *run, task *domain.Task, predecessors []string) (int64, string, error) {
	var result int64

	for _, predecessor := range predecessors {
		state, exists := r.outcome.States[predecessor]
		if !exists {
			return 0, "",
				fmt.Errorf(
					"%w: predecessor %q of %q has no state",

					ErrInternalConsistency,
					predecessor,
					task.ID,
				)
		}

		switch state.Status {
		case StatusFailed:
			return 0, predecessor,
				nil

		case StatusScheduled:
			result = max(result, state.Assignment.End)

		default:
			return 0, "",
				fmt.Errorf(
					"%w: predecessor %q of %q is %s",

					ErrInternalConsistency,
					predecessor,
					task.ID,
					state.Status,
				)
		}
	}

	if len(predecessors) > 0 {
		if result > calendar.OpenEnded-task.PredecessorDelay {
			result = calendar.OpenEnded
		} else {
			result = result + task.PredecessorDelay
		}
	}

	return result, "",
		nil
}

type probe struct {
	chosen []string

	// reason is set when the task cannot be placed.
	reason error

	start  int64
	probes int
}

// commonStart tightens t until every demand has a candidate free at exactly t.
// Infeasibility is reported through the probe reason, errors stop the run.
func (s *Solver) commonStart(r *run, task *domain.Task, earliest int64) (*probe, error) {
	result := probe{
		chosen: make([]string, len(task.Demands)),
		start:  earliest,
	}

	for {
		result.probes++

		if s.beyondHorizon(result.start) {
			result.reason = fmt.Errorf(
				"%w: start %d after %d",

				ErrHorizonExceeded,
				result.start,
				s.config.Horizon,
			)

			return &result,
				nil
		}

		if result.probes > s.config.MaxProbeIterations {
			result.reason = fmt.Errorf(
				"%w: no common start after %d probes",

				ErrHorizonExceeded,
				s.config.MaxProbeIterations,
			)

			return &result,
				nil
		}

		latest := result.start

		for ix, demand := range task.Demands {
			best := calendar.NoAvailability

			for _, candidate := range demand.Candidates() {
				start, errSlot := s.earliestSlot(r, candidate, result.start, task.Duration, demand.Quantity)
				if errSlot != nil {
					return nil,
						fmt.Errorf("task %q: %w", task.ID, errSlot)
				}

				if start == calendar.NoAvailability {
					continue
				}

				if best == calendar.NoAvailability || start < best {
					best = start
					result.chosen[ix] = candidate
				}
			}

			if best == calendar.NoAvailability {
				result.reason = s.noSlotReason(r, task, demand, result.start)

				return &result,
					nil
			}

			latest = max(latest, best)
		}

		if latest == result.start {
			return &result,
				nil
		}

		result.start = latest
	}
}

// pastTimeRange reports a task that would end at or after OpenEnded.
func pastTimeRange(start, duration int64) bool {
	return start >= calendar.OpenEnded-duration
}

func timeRangeReason(start, duration int64) error {
	return fmt.Errorf(
		"%w: start %d with duration %d ends past the time range",

		ErrHorizonExceeded,
		start,
		duration,
	)
}

func (s *Solver) beyondHorizon(t int64) bool {
	return s.config.Horizon > 0 && t > s.config.Horizon
}

func (s *Solver) earliestSlot(r *run, resourceID string, notBefore, duration int64, quantity uint16) (int64, error) {
	resource, exists := r.resources[resourceID]
	if !exists {
		return calendar.NoAvailability,
			fmt.Errorf("%w: %q", domain.ErrUnknownResource, resourceID)
	}

	start, errFind := resource.Calendar().EarliestSlot(
		&calendar.ParamsEarliestSlot{
			NotBefore:        notBefore,
			Duration:         duration,
			Quantity:         quantity,
			MaximumTimeStart: s.config.Horizon,
		},
	)
	if errFind != nil {
		return calendar.NoAvailability,
			fmt.Errorf("%w: resource %q: %w", ErrInternalConsistency, resourceID, errFind)
	}

	return start,
		nil
}

// noSlotReason tells a demand that fits past the horizon from one that never fits.
func (s *Solver) noSlotReason(r *run, task *domain.Task, demand domain.Demand, t int64) error {
	if s.config.Horizon > 0 {
		for _, candidate := range demand.Candidates() {
			start, errFind := r.resources[candidate].Calendar().EarliestSlot(
				&calendar.ParamsEarliestSlot{
					NotBefore: t,
					Duration:  task.Duration,
					Quantity:  demand.Quantity,
				},
			)
			if errFind == nil && start != calendar.NoAvailability {
				return fmt.Errorf(
					"%w: %s first fits at %d",

					ErrHorizonExceeded,
					candidate,
					start,
				)
			}
		}
	}

	return fmt.Errorf(
		"%w: %s from %d for %d",

		ErrNoSlot,
		demand,
		t,
		task.Duration,
	)
}
