package result

import (
	"encoding/json"

	"github.com/TudorHulban/taskscheduler/internal/solver"
)

// Record is one task of the flat export.
type Record struct {
	TaskID    string   `json:"task"`
	Status    string   `json:"status"`
	Resources []string `json:"resources,omitempty"`
	Reason    string   `json:"reason,omitempty"`

	Start *int64 `json:"start,omitempty"`
	End   *int64 `json:"end,omitempty"`
}

// Records lists scheduled tasks by start then id, followed by failed tasks by id.
func (s *Schedule) Records() []Record {
	result := make([]Record, 0, len(s.assignments)+len(s.failures))

	for _, assignment := range s.Assignments() {
		start, end := assignment.Start, assignment.End

		result = append(
			result,
			Record{
				TaskID:    assignment.TaskID,
				Status:    solver.StatusScheduled.String(),
				Resources: assignment.ResourceIDs,
				Start:     &start,
				End:       &end,
			},
		)
	}

	for _, id := range s.FailedTasks() {
		result = append(
			result,
			Record{
				TaskID: id,
				Status: solver.StatusFailed.String(),
				Reason: s.failures[id].Error(),
			},
		)
	}

	return result
}

type export struct {
	RunID        string         `json:"run_id,omitempty"`
	Tasks        []Record       `json:"tasks"`
	Utilization  []*Utilization `json:"utilization"`
	CriticalPath []string       `json:"critical_path"`

	Makespan   int64 `json:"makespan"`
	LowerBound int64 `json:"lower_bound"`
}

func (s *Schedule) MarshalJSON() ([]byte, error) {
	utilization := make([]*Utilization, 0, len(s.utilization))

	for _, id := range s.ResourceIDs() {
		utilization = append(utilization, s.utilization[id])
	}

	return json.Marshal(
		export{
			RunID:        s.runID,
			Tasks:        s.Records(),
			Utilization:  utilization,
			CriticalPath: s.CriticalPath(),
			Makespan:     s.makespan,
			LowerBound:   s.lowerBound,
		},
	)
}
