package result

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// UtilizationStats returns the mean and standard deviation of the resource ratios.
func (s *Schedule) UtilizationStats() (float64, float64) {
	ratios := make([]float64, 0, len(s.utilization))

	for _, id := range s.ResourceIDs() {
		ratios = append(ratios, s.utilization[id].Ratio)
	}

	switch len(ratios) {
	case 0:
		return 0, 0

	case 1:
		return ratios[0], 0
	}

	return stat.MeanStdDev(ratios, nil)
}

// Summary is a deterministic report: assignments by start then id,
// failures with reasons, makespan and the critical path bound.
func (s *Schedule) Summary() string {
	var sb strings.Builder

	if len(s.runID) > 0 {
		sb.WriteString("Schedule " + s.runID + "\n")
	} else {
		sb.WriteString("Schedule\n")
	}

	assignments := s.Assignments()

	width := 0
	for _, assignment := range assignments {
		width = max(width, len(assignment.TaskID))
	}

	for _, assignment := range assignments {
		line := fmt.Sprintf(
			"- %-*s [%d, %d)",

			width,
			assignment.TaskID,
			assignment.Start,
			assignment.End,
		)

		if len(assignment.ResourceIDs) > 0 {
			line = line + " -> " + strings.Join(assignment.ResourceIDs, ", ")
		}

		sb.WriteString(line + "\n")
	}

	if failed := s.FailedTasks(); len(failed) > 0 {
		sb.WriteString("Failed:\n")

		for _, id := range failed {
			sb.WriteString(
				fmt.Sprintf("- %s: %v\n", id, s.failures[id]),
			)
		}
	}

	sb.WriteString(
		fmt.Sprintf("Makespan: %d\n", s.makespan),
	)

	sb.WriteString(
		fmt.Sprintf(
			"Critical path lower bound: %d (%s)\n",

			s.lowerBound,
			strings.Join(s.criticalPath, " "),
		),
	)

	if len(s.utilization) > 0 {
		mean, stddev := s.UtilizationStats()

		sb.WriteString(
			fmt.Sprintf(
				"Utilization: mean %.1f%% stddev %.1f%%\n",

				mean*100,
				stddev*100,
			),
		)
	}

	return sb.String()
}

func (s *Schedule) String() string {
	return s.Summary()
}
