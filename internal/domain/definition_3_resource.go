package domain

import (
	"errors"
	"fmt"
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
)

type Resource struct {
	ID        string
	Intervals []calendar.TimeInterval

	calendar *calendar.Calendar

	Capacity uint16
}

type ParamsNewResource struct {
	ID        string `valid:"required"`
	Intervals []calendar.TimeInterval

	// Capacity zero is read as one.
	Capacity uint16
}

func (params *ParamsNewResource) IsValid() error {
	for ix, interval := range params.Intervals {
		if interval.TimeStart < 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ParamsNewResource",
				Issue: goerrors.ErrNegativeInput{
					InputName: fmt.Sprintf("Intervals[%d].TimeStart", ix),
				},
			}
		}

		if interval.TimeStart > interval.TimeEnd {
			return goerrors.ErrInvalidInput{
				Caller:     "IsValid - ParamsNewResource",
				InputName:  fmt.Sprintf("Intervals[%d]", ix),
				InputValue: interval.String(),
				Issue: errors.New(
					"time start greater than time end",
				),
			}
		}
	}

	return nil
}

func NewResource(params *ParamsNewResource) (*Resource, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Domain",
				Caller:      "NewResource",
				Issue:       errValidation,
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	capacity := max(params.Capacity, 1)

	return &Resource{
			ID:        params.ID,
			Intervals: slices.Clone(params.Intervals),
			Capacity:  capacity,

			calendar: calendar.NewCalendar(capacity, params.Intervals...),
		},
		nil
}

// Calendar is the resource availability. It is mutated by a solve pass.
func (r *Resource) Calendar() *calendar.Calendar {
	return r.calendar
}

// Reset discards bookings made by previous solve passes.
func (r *Resource) Reset() {
	r.calendar.Reset()
}

func (r *Resource) String() string {
	return fmt.Sprintf(
		"%s (capacity %d, %d windows)",

		r.ID,
		r.Capacity,
		len(r.Intervals),
	)
}

// IndexResources maps resources by ID and rejects duplicates.
func IndexResources(resources []*Resource) (map[string]*Resource, error) {
	result := make(map[string]*Resource, len(resources))

	for ix, resource := range resources {
		if resource == nil {
			return nil,
				goerrors.ErrNilInput{
					InputName: fmt.Sprintf("resources[%d]", ix),
				}
		}

		if _, exists := result[resource.ID]; exists {
			return nil,
				goerrors.ErrInvalidInput{
					Caller:     "IndexResources",
					InputName:  "ID",
					InputValue: resource.ID,
					Issue: errors.New(
						"duplicate resource",
					),
				}
		}

		result[resource.ID] = resource
	}

	return result,
		nil
}
