package calendar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrNotNormalized is returned by queries issued before Normalize.
	ErrNotNormalized = errors.New("calendar not normalized")

	// ErrConsistency signals a booking that the calendar cannot hold.
	// Callers using EarliestSlot correctly never see it.
	ErrConsistency = errors.New("calendar consistency violated")
)

// Segment is a free span together with the capacity still available on it.
type Segment struct {
	TimeInterval

	Available uint16
}

func (s Segment) String() string {
	return fmt.Sprintf(
		"%s x%d",

		s.TimeInterval.String(),
		s.Available,
	)
}

// Calendar owns the availability of one resource.
// It is not safe for concurrent use; a solve pass owns it exclusively.
type Calendar struct {
	raw      []TimeInterval
	windows  []TimeInterval
	segments []Segment

	capacity   uint16
	normalized bool
}

// NewCalendar keeps the raw intervals as given. Capacity zero is read as one.
func NewCalendar(capacity uint16, intervals ...TimeInterval) *Calendar {
	return &Calendar{
		raw:      slices.Clone(intervals),
		capacity: max(capacity, 1),
	}
}

func (c *Calendar) Capacity() uint16 {
	return c.capacity
}

func (c *Calendar) IsNormalized() bool {
	return c.normalized
}

// Normalize sorts the raw intervals and merges overlapping or touching ones.
// Calling it on a normalized calendar keeps bookings and only re-coalesces segments.
func (c *Calendar) Normalize() {
	if c.normalized {
		c.segments = coalesce(c.segments)

		return
	}

	c.windows = mergeIntervals(c.raw)
	c.segments = make([]Segment, 0, len(c.windows))

	for _, window := range c.windows {
		c.segments = append(
			c.segments,
			Segment{
				TimeInterval: window,
				Available:    c.capacity,
			},
		)
	}

	c.normalized = true
}

// Reset drops all bookings and returns the calendar to its raw state.
func (c *Calendar) Reset() {
	c.windows = nil
	c.segments = nil
	c.normalized = false
}

func mergeIntervals(intervals []TimeInterval) []TimeInterval {
	sorted := make([]TimeInterval, 0, len(intervals))

	for _, interval := range intervals {
		if interval.IsEmpty() {
			continue
		}

		sorted = append(sorted, interval)
	}

	slices.SortFunc(
		sorted,
		func(a, b TimeInterval) int {
			if a.TimeStart != b.TimeStart {
				return compareInt64(a.TimeStart, b.TimeStart)
			}

			return compareInt64(a.TimeEnd, b.TimeEnd)
		},
	)

	result := make([]TimeInterval, 0, len(sorted))

	for _, interval := range sorted {
		last := len(result) - 1

		if last >= 0 && interval.TimeStart <= result[last].TimeEnd {
			result[last].TimeEnd = max(result[last].TimeEnd, interval.TimeEnd)

			continue
		}

		result = append(result, interval)
	}

	return result
}

// coalesce merges touching segments that carry the same available count.
func coalesce(segments []Segment) []Segment {
	result := make([]Segment, 0, len(segments))

	for _, segment := range segments {
		if segment.IsEmpty() || segment.Available == 0 {
			continue
		}

		last := len(result) - 1

		if last >= 0 &&
			result[last].TimeEnd == segment.TimeStart &&
			result[last].Available == segment.Available {
			result[last].TimeEnd = segment.TimeEnd

			continue
		}

		result = append(result, segment)
	}

	return result
}

func compareInt64(a, b int64) int {
	if a < b {
		return -1
	}

	if a > b {
		return 1
	}

	return 0
}

func (c *Calendar) String() string {
	if len(c.segments) == 0 {
		return "Calendar: (empty)"
	}

	var sb strings.Builder

	sb.WriteString(
		fmt.Sprintf("Calendar (capacity %d):\n", c.capacity),
	)

	for _, segment := range c.segments {
		sb.WriteString("- " + segment.String() + "\n")
	}

	return sb.String()
}
