package result

import (
	"fmt"
	"strings"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
	"github.com/TudorHulban/taskscheduler/internal/domain"
)

// Utilization is the busy and idle breakdown of one resource.
type Utilization struct {
	ResourceID string                  `json:"resource"`
	Busy       []calendar.Occupancy    `json:"busy"`
	Idle       []calendar.TimeInterval `json:"idle"`

	// Ratio is booked capacity over offered capacity inside [0, makespan).
	Ratio float64 `json:"ratio"`

	Capacity uint16 `json:"capacity"`
}

func newUtilization(resource *domain.Resource, makespan int64) *Utilization {
	cal := resource.Calendar()

	result := Utilization{
		ResourceID: resource.ID,
		Capacity:   cal.Capacity(),
		Busy:       cal.BusyIntervals(),
		Idle:       idleIntervals(cal.Windows(), cal.BusyIntervals()),
	}

	var offered, booked int64

	for _, window := range cal.Windows() {
		offered = offered + clippedLength(window, makespan)*int64(result.Capacity)
	}

	for _, busy := range result.Busy {
		booked = booked + clippedLength(busy.TimeInterval, makespan)*int64(busy.Booked)
	}

	if offered > 0 {
		result.Ratio = float64(booked) / float64(offered)
	}

	return &result
}

func clippedLength(interval calendar.TimeInterval, until int64) int64 {
	end := min(interval.TimeEnd, until)
	if end <= interval.TimeStart {
		return 0
	}

	return end - interval.TimeStart
}

// idleIntervals subtracts the busy spans from the windows. Both come sorted.
func idleIntervals(windows []calendar.TimeInterval, busy []calendar.Occupancy) []calendar.TimeInterval {
	result := make([]calendar.TimeInterval, 0, len(windows))

	var ix int

	for _, window := range windows {
		cursor := window.TimeStart

		for ix < len(busy) && busy[ix].TimeStart < window.TimeEnd {
			if busy[ix].TimeStart > cursor {
				result = append(
					result,
					calendar.TimeInterval{
						TimeStart: cursor,
						TimeEnd:   busy[ix].TimeStart,
					},
				)
			}

			cursor = max(cursor, busy[ix].TimeEnd)
			ix++
		}

		if cursor < window.TimeEnd {
			result = append(
				result,
				calendar.TimeInterval{
					TimeStart: cursor,
					TimeEnd:   window.TimeEnd,
				},
			)
		}
	}

	return result
}

func (u *Utilization) String() string {
	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf("%s (capacity %d) %.1f%%\n", u.ResourceID, u.Capacity, u.Ratio*100),
	)

	for _, busy := range u.Busy {
		sb.WriteString(
			fmt.Sprintf("- busy %s x%d\n", busy.TimeInterval, busy.Booked),
		)
	}

	for _, idle := range u.Idle {
		sb.WriteString("- idle " + idle.String() + "\n")
	}

	return sb.String()
}
