package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TudorHulban/taskscheduler/internal/domain"
)

func newTestTask(id string, duration int64, predecessors ...string) *domain.Task {
	return &domain.Task{
		ID:           id,
		Duration:     duration,
		Predecessors: predecessors,
	}
}

func buildTestGraph(t *testing.T, tasks ...*domain.Task) *TaskGraph {
	t.Helper()

	g, errBuild := Build(tasks)
	require.NoError(t, errBuild)

	return g
}

func positions(order []string) map[string]int {
	result := make(map[string]int, len(order))

	for ix, id := range order {
		result[id] = ix
	}

	return result
}

func TestBuild(t *testing.T) {
	g := buildTestGraph(t,
		newTestTask("C", 1, "A", "B", "A"),
		newTestTask("A", 1),
		newTestTask("B", 1, "A"),
		newTestTask("D", 1, "C"),
		newTestTask("E", 1),
	)

	require.Equal(t, 5, g.Len())
	require.Equal(t, []string{"A", "E"}, g.Roots())
	require.Equal(t, []string{"D", "E"}, g.Leaves())
	require.Equal(t, []string{"B", "C"}, g.Successors("A"))
	require.Equal(t, []string{"A", "B"}, g.Predecessors("C"), "duplicate edges collapse")
	require.Equal(t, []string{"B", "C", "D"}, g.Descendants("A"))
	require.Empty(t, g.Descendants("E"))

	task, exists := g.Task("D")
	require.True(t, exists)
	require.Equal(t, "D", task.ID)
}

func TestBuildStructuralErrors(t *testing.T) {
	t.Run(
		"1. two task cycle",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{
					newTestTask("A", 1, "B"),
					newTestTask("B", 1, "A"),
				},
			)
			require.Error(t, errBuild)
			require.ErrorIs(t, errBuild, ErrCyclicDependency)

			var errStructural *ErrStructural
			require.True(t, errors.As(errBuild, &errStructural))
			require.Contains(t, errStructural.Cycle, "A")
			require.Contains(t, errStructural.Cycle, "B")
			require.Equal(t,
				errStructural.Cycle[0],
				errStructural.Cycle[len(errStructural.Cycle)-1],
			)
			require.Contains(t, errBuild.Error(), "A")
			require.Contains(t, errBuild.Error(), "B")
		},
	)

	t.Run(
		"2. self loop",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{
					newTestTask("A", 1, "A"),
				},
			)
			require.ErrorIs(t, errBuild, ErrCyclicDependency)
		},
	)

	t.Run(
		"3. longer cycle behind a root",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{
					newTestTask("root", 1),
					newTestTask("X", 1, "root", "Z"),
					newTestTask("Y", 1, "X"),
					newTestTask("Z", 1, "Y"),
				},
			)
			require.ErrorIs(t, errBuild, ErrCyclicDependency)

			var errStructural *ErrStructural
			require.True(t, errors.As(errBuild, &errStructural))
			require.Len(t, errStructural.Cycle, 4)
			require.NotContains(t, errStructural.Cycle, "root")
		},
	)

	t.Run(
		"4. dangling predecessor",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{
					newTestTask("A", 1, "missing"),
				},
			)
			require.ErrorIs(t, errBuild, ErrDanglingPredecessor)
			require.Contains(t, errBuild.Error(), "missing")
		},
	)

	t.Run(
		"5. duplicate task",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{
					newTestTask("A", 1),
					newTestTask("A", 2),
				},
			)
			require.ErrorIs(t, errBuild, ErrDuplicateTask)
		},
	)

	t.Run(
		"6. nil task",
		func(t *testing.T) {
			_, errBuild := Build(
				[]*domain.Task{nil},
			)
			require.Error(t, errBuild)
		},
	)
}

func TestOrder(t *testing.T) {
	t.Run(
		"1. precedence respected",
		func(t *testing.T) {
			g := buildTestGraph(t,
				newTestTask("deploy", 1, "test", "build"),
				newTestTask("test", 1, "build"),
				newTestTask("build", 1, "fetch"),
				newTestTask("fetch", 1),
				newTestTask("docs", 1),
			)

			order := g.Order()
			require.Len(t, order, 5)

			pos := positions(order)

			for _, id := range order {
				for _, predecessor := range g.Predecessors(id) {
					require.Less(t, pos[predecessor], pos[id])
				}
			}
		},
	)

	t.Run(
		"2. ties broken by id",
		func(t *testing.T) {
			g := buildTestGraph(t,
				newTestTask("c", 1),
				newTestTask("a", 1),
				newTestTask("b", 1),
			)

			require.Equal(t, []string{"a", "b", "c"}, g.Order())
		},
	)

	t.Run(
		"3. priority before id",
		func(t *testing.T) {
			urgent := newTestTask("z", 1)
			urgent.Priority = -1

			g := buildTestGraph(t,
				newTestTask("a", 1),
				urgent,
				newTestTask("b", 1, "z"),
			)

			require.Equal(t, []string{"z", "a", "b"}, g.Order())
		},
	)

	t.Run(
		"4. independent of input order",
		func(t *testing.T) {
			tasks := []*domain.Task{
				newTestTask("A", 1),
				newTestTask("B", 1, "A"),
				newTestTask("C", 1, "A"),
				newTestTask("D", 1, "B", "C"),
				newTestTask("E", 1),
			}

			reversed := make([]*domain.Task, 0, len(tasks))
			for ix := len(tasks) - 1; ix >= 0; ix-- {
				reversed = append(reversed, tasks[ix])
			}

			require.Equal(t,
				buildTestGraph(t, tasks...).Order(),
				buildTestGraph(t, reversed...).Order(),
			)
			require.Equal(t,
				[]string{"A", "B", "C", "D", "E"},
				buildTestGraph(t, tasks...).Order(),
			)
		},
	)

	t.Run(
		"5. empty graph",
		func(t *testing.T) {
			g := buildTestGraph(t)
			require.Empty(t, g.Order())
		},
	)
}

func TestCriticalPath(t *testing.T) {
	delayed := newTestTask("D", 1, "B", "C")
	delayed.PredecessorDelay = 2

	g := buildTestGraph(t,
		newTestTask("A", 2),
		newTestTask("B", 3, "A"),
		newTestTask("C", 1, "A"),
		delayed,
		newTestTask("E", 1),
	)

	result := g.CriticalPath()

	require.EqualValues(t, 8, result.TotalDuration)
	require.Equal(t, []string{"A", "B", "D"}, result.CriticalPath)

	require.EqualValues(t, 2, result.Timings["C"].ES)
	require.EqualValues(t, 2, result.Timings["C"].Slack)
	require.EqualValues(t, 7, result.Timings["E"].Slack)
	require.EqualValues(t, 7, result.Timings["D"].ES)
	require.False(t, result.Timings["C"].IsCritical)

	require.Contains(t, result.String(), "lower bound 8")
}
