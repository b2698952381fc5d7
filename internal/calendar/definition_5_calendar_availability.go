package calendar

import "slices"

// Occupancy is a span where Booked units of capacity are taken.
type Occupancy struct {
	TimeInterval

	Booked uint16 `json:"booked"`
}

// Windows returns the normalized availability, ignoring bookings.
func (c *Calendar) Windows() []TimeInterval {
	return slices.Clone(c.windows)
}

// FreeIntervals returns the current free segments.
func (c *Calendar) FreeIntervals() []Segment {
	return slices.Clone(c.segments)
}

// BusyIntervals walks every window and reports the spans where capacity was booked.
func (c *Calendar) BusyIntervals() []Occupancy {
	result := make([]Occupancy, 0)

	appendBusy := func(interval TimeInterval, booked uint16) {
		if interval.IsEmpty() || booked == 0 {
			return
		}

		last := len(result) - 1

		if last >= 0 &&
			result[last].TimeEnd == interval.TimeStart &&
			result[last].Booked == booked {
			result[last].TimeEnd = interval.TimeEnd

			return
		}

		result = append(
			result,
			Occupancy{
				TimeInterval: interval,
				Booked:       booked,
			},
		)
	}

	var ix int

	for _, window := range c.windows {
		currentStart := window.TimeStart

		for ix < len(c.segments) && c.segments[ix].TimeStart < window.TimeEnd {
			segment := c.segments[ix]

			if segment.TimeStart > currentStart {
				appendBusy(
					TimeInterval{
						TimeStart: currentStart,
						TimeEnd:   segment.TimeStart,
					},
					c.capacity,
				)
			}

			appendBusy(segment.TimeInterval, c.capacity-segment.Available)

			currentStart = max(currentStart, segment.TimeEnd)
			ix++
		}

		if currentStart < window.TimeEnd {
			appendBusy(
				TimeInterval{
					TimeStart: currentStart,
					TimeEnd:   window.TimeEnd,
				},
				c.capacity,
			)
		}
	}

	return result
}
