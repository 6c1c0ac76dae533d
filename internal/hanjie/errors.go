package hanjie

import (
	"errors"
	"fmt"
)

// ErrInconsistent reports that the puzzle, as posed with its clues and any
// cells fixed so far, admits no solution.
var ErrInconsistent = errors.New("puzzle is inconsistent with its clues")

// ErrPassLimit reports that the solve hit its configured pass budget
// before reaching a fixpoint.
var ErrPassLimit = errors.New("pass limit reached before fixpoint")

type Axis int8

const (
	Rows Axis = iota
	Cols
)

func (a Axis) String() string {
	if a == Rows {
		return "row"
	}
	return "column"
}

// LineError identifies the first line found to be unsatisfiable.
// It unwraps to [ErrInconsistent].
type LineError struct {
	Axis  Axis
	Index int
}

func (e LineError) Error() string {
	return fmt.Sprintf("%s %d cannot satisfy its clues", e.Axis, e.Index)
}

func (e LineError) Unwrap() error { return ErrInconsistent }
