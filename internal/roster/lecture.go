package roster

import (
	"fmt"
	"strings"
	"time"
)

// LectureLabel builds the canonical row-2 label for a lecture number.
// The capital L is enforced here regardless of caller input.
func LectureLabel(number int) string {
	return fmt.Sprintf("Lecture %d", number)
}

// ResolveLectureColumn finds the column whose row-2 label matches the
// given lecture number, or creates one immediately after the last real
// header column. Returns the 1-based column index and whether it was
// created.
//
// Resolution is idempotent: re-running for the same lecture returns the
// existing column untouched, including its row-1 date. More than one
// matching label is an ambiguous roster state and fails.
func ResolveLectureColumn(s Sheet, cols *Columns, number int, date time.Time) (int, bool, error) {
	label := LectureLabel(number)
	target := strings.ToLower(label)

	var matches []int
	for c := 1; c <= cols.LastHeader; c++ {
		if strings.ToLower(s.Cell(2, c)) == target {
			matches = append(matches, c)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], false, nil
	case len(matches) > 1:
		return 0, false, &AmbiguousLabelError{Label: label, Columns: matches}
	}

	col := cols.LastHeader + 1
	s.SetDate(1, col, date)
	s.SetString(2, col, label)
	if f, ok := s.(ColumnFormatter); ok {
		f.FormatLectureColumn(col)
	}

	// Later resolutions in the same run must see this column as occupied.
	cols.LastHeader = col

	return col, true, nil
}
