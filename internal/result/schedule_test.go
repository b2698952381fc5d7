package result

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
	"github.com/TudorHulban/taskscheduler/internal/domain"
	"github.com/TudorHulban/taskscheduler/internal/graph"
	"github.com/TudorHulban/taskscheduler/internal/solver"
)

func newTestSchedule(t *testing.T) *Schedule {
	t.Helper()

	tasks, errTasks := domain.NewTasks(
		&domain.ParamsNewTask{ID: "A", Duration: 2, Demands: []domain.Demand{{ResourceID: "R"}}},
		&domain.ParamsNewTask{ID: "B", Duration: 3, Demands: []domain.Demand{{ResourceID: "R"}}, Predecessors: []string{"A"}},
		&domain.ParamsNewTask{ID: "C", Duration: 5, Demands: []domain.Demand{{ResourceID: "S"}}},
		&domain.ParamsNewTask{ID: "D", Duration: 1, Predecessors: []string{"C"}},
	)
	require.NoError(t, errTasks)

	r, errR := domain.NewResource(
		&domain.ParamsNewResource{
			ID:        "R",
			Intervals: []calendar.TimeInterval{{TimeStart: 0, TimeEnd: 10}},
		},
	)
	require.NoError(t, errR)

	s, errS := domain.NewResource(
		&domain.ParamsNewResource{
			ID:        "S",
			Intervals: []calendar.TimeInterval{{TimeStart: 0, TimeEnd: 1}},
		},
	)
	require.NoError(t, errS)

	resources := map[string]*domain.Resource{"R": r, "S": s}
	for _, resource := range resources {
		resource.Calendar().Normalize()
	}

	g, errBuild := graph.Build(tasks)
	require.NoError(t, errBuild)

	engine, errNew := solver.New(&solver.ParamsNew{})
	require.NoError(t, errNew)

	outcome, errSolve := engine.Solve(g, resources)
	require.NoError(t, errSolve)

	schedule, errSchedule := NewSchedule(
		&ParamsNewSchedule{
			Outcome:   outcome,
			Graph:     g,
			Resources: resources,
			RunID:     "run-1",
		},
	)
	require.NoError(t, errSchedule)

	return schedule
}

func TestNewScheduleValidation(t *testing.T) {
	_, errNoOutcome := NewSchedule(&ParamsNewSchedule{})
	require.Error(t, errNoOutcome)

	_, errNoGraph := NewSchedule(
		&ParamsNewSchedule{
			Outcome: &solver.Outcome{},
		},
	)
	require.Error(t, errNoGraph)
}

func TestSchedule(t *testing.T) {
	schedule := newTestSchedule(t)

	t.Run(
		"1. assignments",
		func(t *testing.T) {
			a, exists := schedule.Assignment("A")
			require.True(t, exists)
			require.Equal(t,
				solver.Assignment{TaskID: "A", ResourceIDs: []string{"R"}, Start: 0, End: 2},
				a,
			)

			_, exists = schedule.Assignment("C")
			require.False(t, exists)

			require.EqualValues(t, 5, schedule.Makespan())
			require.Equal(t, "run-1", schedule.RunID())
			require.Equal(t, []string{"A", "B", "C", "D"}, schedule.Order())
		},
	)

	t.Run(
		"2. failures",
		func(t *testing.T) {
			require.Equal(t, []string{"C", "D"}, schedule.FailedTasks())
			require.ErrorIs(t, schedule.Failure("C"), solver.ErrNoSlot)
			require.ErrorIs(t, schedule.Failure("D"), solver.ErrBlocked)
			require.NoError(t, schedule.Failure("A"))
		},
	)

	t.Run(
		"3. critical path bound",
		func(t *testing.T) {
			require.EqualValues(t, 6, schedule.LowerBound())
			require.Equal(t, []string{"C", "D"}, schedule.CriticalPath())
		},
	)

	t.Run(
		"4. utilization",
		func(t *testing.T) {
			r, exists := schedule.Utilization("R")
			require.True(t, exists)
			require.Equal(t,
				[]calendar.Occupancy{
					{TimeInterval: calendar.TimeInterval{TimeStart: 0, TimeEnd: 5}, Booked: 1},
				},
				r.Busy,
			)
			require.Equal(t,
				[]calendar.TimeInterval{{TimeStart: 5, TimeEnd: 10}},
				r.Idle,
			)
			require.InDelta(t, 1.0, r.Ratio, 1e-9)

			s, exists := schedule.Utilization("S")
			require.True(t, exists)
			require.Empty(t, s.Busy)
			require.Zero(t, s.Ratio)

			mean, stddev := schedule.UtilizationStats()
			require.InDelta(t, 0.5, mean, 1e-9)
			require.InDelta(t, 0.7071, stddev, 1e-4)

			_, exists = schedule.Utilization("missing")
			require.False(t, exists)
		},
	)

	t.Run(
		"5. summary",
		func(t *testing.T) {
			expected := `Schedule run-1
- A [0, 2) -> R
- B [2, 5) -> R
Failed:
- C: no feasible slot: S x1 from 0 for 5
- D: blocked by failed predecessor: C
Makespan: 5
Critical path lower bound: 6 (C D)
Utilization: mean 50.0% stddev 70.7%
`

			require.Equal(t, expected, schedule.Summary())
			require.Equal(t, schedule.Summary(), schedule.Summary())
		},
	)

	t.Run(
		"6. export",
		func(t *testing.T) {
			records := schedule.Records()
			require.Len(t, records, 4)
			require.Equal(t, "A", records[0].TaskID)
			require.Equal(t, "scheduled", records[0].Status)
			require.EqualValues(t, 2, *records[0].End)
			require.Equal(t, "failed", records[3].Status)
			require.Nil(t, records[3].Start)

			raw, errMarshal := json.Marshal(schedule)
			require.NoError(t, errMarshal)

			var decoded struct {
				RunID    string   `json:"run_id"`
				Tasks    []Record `json:"tasks"`
				Makespan int64    `json:"makespan"`

				Utilization []struct {
					Resource string  `json:"resource"`
					Ratio    float64 `json:"ratio"`
				} `json:"utilization"`
			}

			require.NoError(t,
				json.Unmarshal(raw, &decoded),
			)
			require.Equal(t, "run-1", decoded.RunID)
			require.EqualValues(t, 5, decoded.Makespan)
			require.Equal(t, records, decoded.Tasks)
			require.Len(t, decoded.Utilization, 2)
			require.Equal(t, "R", decoded.Utilization[0].Resource)
		},
	)
}

func TestIdleIntervals(t *testing.T) {
	windows := []calendar.TimeInterval{
		{TimeStart: 0, TimeEnd: 10},
		{TimeStart: 20, TimeEnd: calendar.OpenEnded},
	}

	busy := []calendar.Occupancy{
		{TimeInterval: calendar.TimeInterval{TimeStart: 2, TimeEnd: 4}, Booked: 1},
		{TimeInterval: calendar.TimeInterval{TimeStart: 4, TimeEnd: 6}, Booked: 2},
		{TimeInterval: calendar.TimeInterval{TimeStart: 20, TimeEnd: 25}, Booked: 1},
	}

	require.Equal(t,
		[]calendar.TimeInterval{
			{TimeStart: 0, TimeEnd: 2},
			{TimeStart: 6, TimeEnd: 10},
			{TimeStart: 25, TimeEnd: calendar.OpenEnded},
		},
		idleIntervals(windows, busy),
	)

	require.EqualValues(t, 0, clippedLength(windows[1], 15))
	require.EqualValues(t, 5, clippedLength(windows[1], 25))
}
