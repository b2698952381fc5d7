package calendar

import (
	"errors"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

// Consume books quantity units over [timeStart, timeEnd).
// The span must be covered by touching segments that each still offer quantity.
func (c *Calendar) Consume(timeStart, timeEnd int64, quantity uint16) error {
	if !c.normalized {
		return ErrNotNormalized
	}

	if timeStart > timeEnd {
		return goerrors.ErrInvalidInput{
			Caller:     "Consume",
			InputName:  "timeEnd",
			InputValue: timeEnd,
			Issue: errors.New(
				"time start greater than time end",
			),
		}
	}

	if quantity == 0 {
		return goerrors.ErrInvalidInput{
			Caller:     "Consume",
			InputName:  "quantity",
			InputValue: quantity,
			Issue: goerrors.ErrNegativeInput{
				InputName: "quantity",
			},
		}
	}

	if timeStart == timeEnd {
		return nil
	}

	if quantity > c.capacity {
		return fmt.Errorf(
			"%w: quantity %d exceeds capacity %d",

			ErrConsistency,
			quantity,
			c.capacity,
		)
	}

	first, last, errCover := c.coveringSegments(timeStart, timeEnd, quantity)
	if errCover != nil {
		return errCover
	}

	updated := make([]Segment, 0, len(c.segments)+2)
	updated = append(updated, c.segments[:first]...)

	for _, segment := range c.segments[first : last+1] {
		if segment.TimeStart < timeStart {
			updated = append(
				updated,
				Segment{
					TimeInterval: TimeInterval{
						TimeStart: segment.TimeStart,
						TimeEnd:   timeStart,
					},
					Available: segment.Available,
				},
			)
		}

		updated = append(
			updated,
			Segment{
				TimeInterval: TimeInterval{
					TimeStart: max(segment.TimeStart, timeStart),
					TimeEnd:   min(segment.TimeEnd, timeEnd),
				},
				Available: segment.Available - quantity,
			},
		)

		if segment.TimeEnd > timeEnd {
			updated = append(
				updated,
				Segment{
					TimeInterval: TimeInterval{
						TimeStart: timeEnd,
						TimeEnd:   segment.TimeEnd,
					},
					Available: segment.Available,
				},
			)
		}
	}

	updated = append(updated, c.segments[last+1:]...)

	c.segments = coalesce(updated)

	return nil
}

// coveringSegments returns the index range of segments spanning [timeStart, timeEnd).
func (c *Calendar) coveringSegments(timeStart, timeEnd int64, quantity uint16) (int, int, error) {
	first := -1

	for ix, segment := range c.segments {
		if segment.TimeStart <= timeStart && timeStart < segment.TimeEnd {
			first = ix

			break
		}
	}

	if first == -1 {
		return 0, 0,
			fmt.Errorf(
				"%w: %s not inside any free segment",

				ErrConsistency,
				TimeInterval{TimeStart: timeStart, TimeEnd: timeEnd},
			)
	}

	for ix := first; ix < len(c.segments); ix++ {
		segment := c.segments[ix]

		if ix > first && segment.TimeStart != c.segments[ix-1].TimeEnd {
			break
		}

		if segment.Available < quantity {
			return 0, 0,
				fmt.Errorf(
					"%w: %s offers %d, %d requested",

					ErrConsistency,
					segment.TimeInterval,
					segment.Available,
					quantity,
				)
		}

		if segment.TimeEnd >= timeEnd {
			return first, ix,
				nil
		}
	}

	return 0, 0,
		fmt.Errorf(
			"%w: %s runs past free segment",

			ErrConsistency,
			TimeInterval{TimeStart: timeStart, TimeEnd: timeEnd},
		)
}
