package roster

import (
	"errors"
	"fmt"
)

// ErrMissingEmailHeader indicates the roster has no Email header in row 1.
// Without it there is no join key and the merge cannot proceed.
var ErrMissingEmailHeader = errors.New("column 'Email' not found in roster sheet (row 1)")

// AmbiguousLabelError indicates more than one row-2 cell matched the
// target lecture label. Writing into either column would be a guess, so
// the run fails instead.
type AmbiguousLabelError struct {
	Label   string
	Columns []int
}

func (e *AmbiguousLabelError) Error() string {
	return fmt.Sprintf("lecture label %q matches %d columns %v; fix the roster before re-running", e.Label, len(e.Columns), e.Columns)
}
