package domain

import (
	"errors"
	"fmt"
	"slices"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

type Task struct {
	ID           string
	Predecessors []string
	Demands      []Demand

	Duration int64

	// PredecessorDelay is the lag kept after the last predecessor ends.
	PredecessorDelay int64

	// Priority only breaks ties between ready tasks. Lower goes first.
	Priority int
}

type ParamsNewTask struct {
	ID           string `valid:"required"`
	Predecessors []string
	Demands      []Demand

	Duration         int64
	PredecessorDelay int64
	Priority         int
}

func (params *ParamsNewTask) IsValid() error {
	if params.Duration < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrNegativeInput{
				InputName: "Duration",
			},
		}
	}

	if params.PredecessorDelay < 0 {
		return goerrors.ErrValidation{
			Caller: "IsValid - ParamsNewTask",
			Issue: goerrors.ErrNegativeInput{
				InputName: "PredecessorDelay",
			},
		}
	}

	for _, predecessor := range params.Predecessors {
		if len(predecessor) == 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ParamsNewTask",
				Issue: goerrors.ErrNilInput{
					InputName: "Predecessors",
				},
			}
		}
	}

	for ix, demand := range params.Demands {
		if len(demand.ResourceID) == 0 {
			return goerrors.ErrValidation{
				Caller: "IsValid - ParamsNewTask",
				Issue: goerrors.ErrNilInput{
					InputName: fmt.Sprintf("Demands[%d].ResourceID", ix),
				},
			}
		}
	}

	if ix, errClaim := checkClaims(params.Demands); errClaim != nil {
		return goerrors.ErrInvalidInput{
			Caller:     "IsValid - ParamsNewTask",
			InputName:  fmt.Sprintf("Demands[%d]", ix),
			InputValue: params.Demands[ix].String(),
			Issue:      errClaim,
		}
	}

	return nil
}

func NewTask(params *ParamsNewTask) (*Task, error) {
	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "Domain",
				Caller:      "NewTask",
				Issue:       errValidation,
			}
	}

	if errValidation := params.IsValid(); errValidation != nil {
		return nil,
			errValidation
	}

	demands := make([]Demand, len(params.Demands))

	for ix, demand := range params.Demands {
		demands[ix] = Demand{
			ResourceID:   demand.ResourceID,
			Alternatives: slices.Clone(demand.Alternatives),
			Quantity:     max(demand.Quantity, 1),
		}
	}

	return &Task{
			ID:           params.ID,
			Predecessors: slices.Clone(params.Predecessors),
			Demands:      demands,

			Duration:         params.Duration,
			PredecessorDelay: params.PredecessorDelay,
			Priority:         params.Priority,
		},
		nil
}

// NewTasks builds every task and stops at the first invalid one.
func NewTasks(params ...*ParamsNewTask) ([]*Task, error) {
	result := make([]*Task, 0, len(params))

	for _, param := range params {
		if param == nil {
			return nil,
				goerrors.ErrNilInput{
					InputName: "ParamsNewTask",
				}
		}

		task, errCr := NewTask(param)
		if errCr != nil {
			return nil,
				fmt.Errorf("task %q: %w", param.ID, errCr)
		}

		result = append(result, task)
	}

	return result,
		nil
}

var (
	// ErrUnknownResource is returned when a demand names a resource nobody defined.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrResourceClaimed is returned when two demands of one task could use the same resource.
	ErrResourceClaimed = errors.New("resource claimed by two demands")

	// ErrInvalidTask covers tasks built without NewTask that break its rules.
	ErrInvalidTask = errors.New("invalid task")
)

// checkClaims returns the index of the first demand sharing a candidate with an earlier one.
func checkClaims(demands []Demand) (int, error) {
	claimed := make(map[string]int)

	for ix, demand := range demands {
		for _, candidate := range demand.Candidates() {
			if previous, exists := claimed[candidate]; exists {
				return ix,
					fmt.Errorf(
						"%w: %q by demands %d and %d",

						ErrResourceClaimed,
						candidate,
						previous,
						ix,
					)
			}

			claimed[candidate] = ix
		}
	}

	return -1,
		nil
}

// CheckResources verifies the demands against the catalogue: every candidate
// exists and no resource is claimed twice. It also re-checks the rules NewTask
// enforces, as tasks may be built as literals.
func (t *Task) CheckResources(catalogue map[string]*Resource) error {
	if t.Duration < 0 || t.PredecessorDelay < 0 {
		return fmt.Errorf(
			"%w: task %q has negative duration or delay",

			ErrInvalidTask,
			t.ID,
		)
	}

	for ix, demand := range t.Demands {
		candidates := demand.Candidates()

		if len(candidates) == 0 {
			return fmt.Errorf(
				"%w: task %q demand %d names no resource",

				ErrInvalidTask,
				t.ID,
				ix,
			)
		}

		for _, candidate := range candidates {
			if _, exists := catalogue[candidate]; !exists {
				return fmt.Errorf(
					"%w: task %q asks for %q",

					ErrUnknownResource,
					t.ID,
					candidate,
				)
			}
		}
	}

	if _, errClaim := checkClaims(t.Demands); errClaim != nil {
		return fmt.Errorf(
			"task %q: %w",

			t.ID,
			errClaim,
		)
	}

	return nil
}
