package graph

import (
	"fmt"
	"strings"
)

// TaskTiming holds the precedence-only timing of one task.
type TaskTiming struct {
	TaskID string

	ES, EF int64 // earliest start/finish
	LS, LF int64 // latest start/finish
	Slack  int64

	IsCritical bool
}

// CPMResult ignores resources entirely.
// TotalDuration is therefore a lower bound for any feasible makespan.
type CPMResult struct {
	Timings      map[string]*TaskTiming
	CriticalPath []string

	TotalDuration int64
}

// CriticalPath runs the forward and backward passes of the critical path method
// over the task durations and predecessor delays.
func (g *TaskGraph) CriticalPath() *CPMResult {
	result := CPMResult{
		Timings: make(map[string]*TaskTiming, len(g.tasks)),
	}

	for _, id := range g.order {
		task := g.tasks[id]

		var es int64

		if predecessors := g.revAdj[id]; len(predecessors) > 0 {
			for _, predecessor := range predecessors {
				es = max(es, result.Timings[predecessor].EF)
			}

			es = es + task.PredecessorDelay
		}

		result.Timings[id] = &TaskTiming{
			TaskID: id,
			ES:     es,
			EF:     es + task.Duration,
		}

		result.TotalDuration = max(result.TotalDuration, es+task.Duration)
	}

	for ix := len(g.order) - 1; ix >= 0; ix-- {
		id := g.order[ix]
		timing := result.Timings[id]

		lf := result.TotalDuration

		for _, successor := range g.adj[id] {
			lf = min(
				lf,
				result.Timings[successor].LS-g.tasks[successor].PredecessorDelay,
			)
		}

		timing.LF = lf
		timing.LS = lf - g.tasks[id].Duration
		timing.Slack = timing.LS - timing.ES
		timing.IsCritical = timing.Slack == 0
	}

	for _, id := range g.order {
		if result.Timings[id].IsCritical {
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}

	return &result
}

func (r *CPMResult) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf("Critical path (lower bound %d):", r.TotalDuration),
	)

	for _, id := range r.CriticalPath {
		sb.WriteString(" " + id)
	}

	return sb.String()
}
