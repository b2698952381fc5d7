package calendar

type ParamsEarliestSlot struct {
	NotBefore int64
	Duration  int64

	// MaximumTimeStart bounds the lookahead. Zero means unbounded.
	MaximumTimeStart int64

	Quantity uint16
}

// EarliestSlot returns the first start at or after NotBefore where Duration
// fits inside contiguous segments that each still offer Quantity.
// A zero Duration asks for a point lying inside a qualifying segment.
// It returns NoAvailability when the calendar or the lookahead is exhausted.
func (c *Calendar) EarliestSlot(params *ParamsEarliestSlot) (int64, error) {
	if !c.normalized {
		return NoAvailability,
			ErrNotNormalized
	}

	quantity := max(params.Quantity, 1)
	if quantity > c.capacity || params.Duration < 0 {
		return NoAvailability,
			nil
	}

	var (
		runStart int64
		prevEnd  int64
		inRun    bool
	)

	for _, segment := range c.segments {
		if segment.Available < quantity {
			inRun = false

			continue
		}

		if !inRun || segment.TimeStart != prevEnd {
			runStart = segment.TimeStart
			inRun = true
		}

		prevEnd = segment.TimeEnd

		candidate := max(runStart, params.NotBefore)
		if candidate >= segment.TimeEnd {
			continue
		}

		if params.MaximumTimeStart > 0 && candidate > params.MaximumTimeStart {
			return NoAvailability,
				nil
		}

		if segment.TimeEnd-candidate >= params.Duration {
			return candidate,
				nil
		}
	}

	return NoAvailability,
		nil
}

// IsAvailableIn reports whether the whole interval can host quantity units.
func (c *Calendar) IsAvailableIn(interval TimeInterval, quantity uint16) bool {
	start, errFind := c.EarliestSlot(
		&ParamsEarliestSlot{
			NotBefore: interval.TimeStart,
			Duration:  interval.TimeEnd - interval.TimeStart,
			Quantity:  quantity,
		},
	)
	if errFind != nil {
		return false
	}

	return start == interval.TimeStart
}
