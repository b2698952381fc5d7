package result

import (
	"slices"
	"sort"

	goerrors "github.com/TudorHulban/go-errors"

	"github.com/TudorHulban/taskscheduler/internal/domain"
	"github.com/TudorHulban/taskscheduler/internal/graph"
	"github.com/TudorHulban/taskscheduler/internal/solver"
)

// Schedule is the read only view of one solve pass.
type Schedule struct {
	assignments map[string]solver.Assignment
	failures    map[string]error
	utilization map[string]*Utilization

	runID        string
	order        []string
	criticalPath []string

	makespan   int64
	lowerBound int64
	probes     int
}

type ParamsNewSchedule struct {
	Outcome   *solver.Outcome
	Graph     *graph.TaskGraph
	Resources map[string]*domain.Resource

	RunID string
}

func (params *ParamsNewSchedule) IsValid() error {
	if params.Outcome == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSchedule",
			Issue: goerrors.ErrNilInput{
				InputName: "Outcome",
			},
		}
	}

	if params.Graph == nil {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewSchedule",
			Issue: goerrors.ErrNilInput{
				InputName: "Graph",
			},
		}
	}

	return nil
}

// NewSchedule snapshots the outcome and the resource calendars.
// Later changes to the calendars do not show up in the schedule.
func NewSchedule(params *ParamsNewSchedule) (*Schedule, error) {
	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	result := Schedule{
		assignments: make(map[string]solver.Assignment),
		failures:    make(map[string]error),
		utilization: make(map[string]*Utilization, len(params.Resources)),

		runID: params.RunID,
		order: slices.Clone(params.Outcome.Order),

		probes: params.Outcome.Probes,
	}

	for id, state := range params.Outcome.States {
		switch state.Status {
		case solver.StatusScheduled:
			result.assignments[id] = *state.Assignment
			result.makespan = max(result.makespan, state.Assignment.End)

		case solver.StatusFailed:
			result.failures[id] = state.Reason
		}
	}

	cpm := params.Graph.CriticalPath()
	result.lowerBound = cpm.TotalDuration
	result.criticalPath = cpm.CriticalPath

	for id, resource := range params.Resources {
		result.utilization[id] = newUtilization(resource, result.makespan)
	}

	return &result,
		nil
}

func (s *Schedule) RunID() string {
	return s.runID
}

func (s *Schedule) Assignment(taskID string) (solver.Assignment, bool) {
	assignment, exists := s.assignments[taskID]

	return assignment, exists
}

// Makespan is the latest end over all assignments, zero when nothing got scheduled.
func (s *Schedule) Makespan() int64 {
	return s.makespan
}

// LowerBound is the critical path length, ignoring resources.
func (s *Schedule) LowerBound() int64 {
	return s.lowerBound
}

func (s *Schedule) CriticalPath() []string {
	return slices.Clone(s.criticalPath)
}

// Order is the order tasks were resolved in.
func (s *Schedule) Order() []string {
	return slices.Clone(s.order)
}

func (s *Schedule) Probes() int {
	return s.probes
}

// FailedTasks returns the failed task ids sorted.
func (s *Schedule) FailedTasks() []string {
	result := make([]string, 0, len(s.failures))

	for id := range s.failures {
		result = append(result, id)
	}

	sort.Strings(result)

	return result
}

// Failure returns why a task failed, nil when it did not.
func (s *Schedule) Failure(taskID string) error {
	return s.failures[taskID]
}

// Assignments returns the scheduled tasks by start, then id.
func (s *Schedule) Assignments() []solver.Assignment {
	result := make([]solver.Assignment, 0, len(s.assignments))

	for _, assignment := range s.assignments {
		result = append(result, assignment)
	}

	sort.Slice(
		result,
		func(i, j int) bool {
			if result[i].Start != result[j].Start {
				return result[i].Start < result[j].Start
			}

			return result[i].TaskID < result[j].TaskID
		},
	)

	return result
}

func (s *Schedule) Utilization(resourceID string) (*Utilization, bool) {
	utilization, exists := s.utilization[resourceID]

	return utilization, exists
}

// ResourceIDs lists the resources the schedule carries utilization for, sorted.
func (s *Schedule) ResourceIDs() []string {
	result := make([]string, 0, len(s.utilization))

	for id := range s.utilization {
		result = append(result, id)
	}

	sort.Strings(result)

	return result
}
