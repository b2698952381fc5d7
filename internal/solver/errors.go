package solver

import "errors"

// Per task failure reasons, stored in the task state.
var (
	ErrNoSlot          = errors.New("no feasible slot")
	ErrHorizonExceeded = errors.New("horizon exceeded")
	ErrBlocked         = errors.New("blocked by failed predecessor")
)

// ErrInternalConsistency aborts a solve. It points at a solver defect, never at user input.
var ErrInternalConsistency = errors.New("internal consistency")
