package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TudorHulban/taskscheduler/internal/result"
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	styleLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8A8A8A"))

	styleFailed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75"))

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
)

func renderSchedule(schedule *result.Schedule) string {
	blocks := []string{
		styleTitle.Render("Schedule " + schedule.RunID()),
	}

	assignments := schedule.Assignments()

	if len(assignments) > 0 {
		width := 0
		for _, assignment := range assignments {
			width = max(width, len(assignment.TaskID))
		}

		lines := make([]string, 0, len(assignments))

		for _, assignment := range assignments {
			lines = append(
				lines,
				fmt.Sprintf(
					"%-*s [%d, %d) %s",

					width,
					assignment.TaskID,
					assignment.Start,
					assignment.End,
					strings.Join(assignment.ResourceIDs, ", "),
				),
			)
		}

		blocks = append(blocks, styleBox.Render(strings.Join(lines, "\n")))
	}

	if failed := schedule.FailedTasks(); len(failed) > 0 {
		lines := make([]string, 0, len(failed)+1)
		lines = append(lines, styleFailed.Bold(true).Render("Failed"))

		for _, id := range failed {
			lines = append(
				lines,
				styleFailed.Render(fmt.Sprintf("%s: %v", id, schedule.Failure(id))),
			)
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	mean, stddev := schedule.UtilizationStats()

	blocks = append(
		blocks,
		lipgloss.JoinVertical(
			lipgloss.Left,
			styleLabel.Render("makespan ")+fmt.Sprint(schedule.Makespan()),
			styleLabel.Render("lower bound ")+
				fmt.Sprintf("%d (%s)", schedule.LowerBound(), strings.Join(schedule.CriticalPath(), " ")),
			styleLabel.Render("utilization ")+
				fmt.Sprintf("mean %.1f%% stddev %.1f%%", mean*100, stddev*100),
		),
	)

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}
