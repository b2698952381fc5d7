package solver

import (
	"fmt"
	"strings"
)

type Status uint8

const (
	StatusReady Status = iota
	StatusAssigning
	StatusScheduled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusAssigning:
		return "assigning"
	case StatusScheduled:
		return "scheduled"
	case StatusFailed:
		return "failed"
	}

	return fmt.Sprintf("status(%d)", uint8(s))
}

// Assignment places a task on one resource per demand, in demand order.
type Assignment struct {
	TaskID      string   `json:"task"`
	ResourceIDs []string `json:"resources"`

	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

func (a Assignment) String() string {
	return fmt.Sprintf(
		"%s [%d, %d) -> %s",

		a.TaskID,
		a.Start,
		a.End,
		strings.Join(a.ResourceIDs, ", "),
	)
}

// TaskState is the per run state of one task.
// Assignment is set only when scheduled, Reason only when failed.
type TaskState struct {
	Assignment *Assignment
	Reason     error

	Status Status
}

// Outcome is everything a solve pass resolved.
type Outcome struct {
	States map[string]*TaskState
	Order  []string

	// Probes counts the tightening iterations over all tasks.
	Probes int
}

func (o *Outcome) Assignment(taskID string) (Assignment, bool) {
	state, exists := o.States[taskID]
	if !exists || state.Assignment == nil {
		return Assignment{}, false
	}

	return *state.Assignment, true
}

// Assignments lists the scheduled tasks in solve order.
func (o *Outcome) Assignments() []Assignment {
	result := make([]Assignment, 0, len(o.States))

	for _, id := range o.Order {
		if assignment, exists := o.Assignment(id); exists {
			result = append(result, assignment)
		}
	}

	return result
}

// Failed lists the failed tasks in solve order.
func (o *Outcome) Failed() []string {
	result := make([]string, 0)

	for _, id := range o.Order {
		if o.States[id].Status == StatusFailed {
			result = append(result, id)
		}
	}

	return result
}
