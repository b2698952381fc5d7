package calendar

import (
	"fmt"
	"math"
)

// OpenEnded as TimeEnd marks availability without a horizon.
const OpenEnded int64 = math.MaxInt64

// NoAvailability is returned by searches that found no slot.
const NoAvailability int64 = -1

// TimeInterval is the half-open span [TimeStart, TimeEnd).
type TimeInterval struct {
	TimeStart int64 `json:"start"`
	TimeEnd   int64 `json:"end"`
}

func (interval TimeInterval) IsOpenEnded() bool {
	return interval.TimeEnd == OpenEnded
}

func (interval TimeInterval) IsEmpty() bool {
	return interval.TimeEnd <= interval.TimeStart
}

// Length returns OpenEnded for intervals without a horizon.
func (interval TimeInterval) Length() int64 {
	if interval.IsOpenEnded() {
		return OpenEnded
	}

	return interval.TimeEnd - interval.TimeStart
}

func (interval TimeInterval) Contains(other TimeInterval) bool {
	return interval.TimeStart <= other.TimeStart &&
		other.TimeEnd <= interval.TimeEnd
}

func (interval TimeInterval) Overlaps(other TimeInterval) bool {
	return max(interval.TimeStart, other.TimeStart) <
		min(interval.TimeEnd, other.TimeEnd)
}

func (interval TimeInterval) String() string {
	if interval.IsOpenEnded() {
		return fmt.Sprintf("[%d, open)", interval.TimeStart)
	}

	return fmt.Sprintf(
		"[%d, %d)",

		interval.TimeStart,
		interval.TimeEnd,
	)
}
