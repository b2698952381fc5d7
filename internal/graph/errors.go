package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCyclicDependency    = errors.New("cyclic dependency")
	ErrDanglingPredecessor = errors.New("dangling predecessor")
	ErrDuplicateTask       = errors.New("duplicate task")
)

// ErrStructural is a fatal problem with the task set itself.
// It is raised while building the graph, before any calendar is touched.
type ErrStructural struct {
	Issue error

	TaskID    string
	Reference string

	// Cycle holds the ids of one cycle in dependency order, first id repeated last.
	Cycle []string
}

func (e *ErrStructural) Error() string {
	switch {
	case errors.Is(e.Issue, ErrCyclicDependency):
		return fmt.Sprintf(
			"%s: %s",

			e.Issue,
			strings.Join(e.Cycle, " -> "),
		)

	case errors.Is(e.Issue, ErrDanglingPredecessor):
		return fmt.Sprintf(
			"%s: task %q depends on unknown %q",

			e.Issue,
			e.TaskID,
			e.Reference,
		)

	default:
		return fmt.Sprintf(
			"%s: %q",

			e.Issue,
			e.TaskID,
		)
	}
}

func (e *ErrStructural) Unwrap() error {
	return e.Issue
}
