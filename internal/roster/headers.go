package roster

import (
	"strings"

	"roll-call/internal/identity"
)

// Columns maps the roster's logical column roles to 1-based indices.
// Zero means the column is absent. The mapping is computed once per run
// and threaded explicitly through the merge components.
type Columns struct {
	Email        int
	FullName     int
	SortableName int
	ID           int

	// LastHeader is the rightmost column with non-empty text in either
	// header row. It is deliberately NOT the sheet's reported extent,
	// which formatting applied to empty cells can inflate.
	LastHeader int
}

// Row-1 header names, matched case-insensitively.
const (
	headerEmail        = "email"
	headerFullName     = "full name"
	headerSortableName = "sortable name"
)

// The optional student-id column goes by a few names in LMS exports.
var idHeaders = []string{"id", "sis id", "sis user id"}

// LocateColumns scans row 1 for the known roster headers and computes
// the last real header column. Fails if the Email header is missing.
func LocateColumns(s Sheet) (*Columns, error) {
	cols := &Columns{}

	maxCol := s.MaxCol()
	for c := 1; c <= maxCol; c++ {
		text := strings.ToLower(s.Cell(1, c))
		if text == "" {
			continue
		}
		switch text {
		case headerEmail:
			if cols.Email == 0 {
				cols.Email = c
			}
		case headerFullName:
			if cols.FullName == 0 {
				cols.FullName = c
			}
		case headerSortableName:
			if cols.SortableName == 0 {
				cols.SortableName = c
			}
		default:
			if cols.ID == 0 && isIDHeader(text) {
				cols.ID = c
			}
		}
	}

	if cols.Email == 0 {
		return nil, ErrMissingEmailHeader
	}

	cols.LastHeader = lastHeaderColumn(s, maxCol)
	return cols, nil
}

func isIDHeader(text string) bool {
	for _, h := range idHeaders {
		if text == h {
			return true
		}
	}
	return false
}

// lastHeaderColumn returns the rightmost column holding non-empty text
// in row 1 or row 2. Both rows count because lecture columns carry a
// date in row 1 and a label in row 2, and either cell alone marks the
// column as occupied.
func lastHeaderColumn(s Sheet, maxCol int) int {
	last := 1
	for c := 1; c <= maxCol; c++ {
		if !identity.IsBlank(s.Cell(1, c)) || !identity.IsBlank(s.Cell(2, c)) {
			last = c
		}
	}
	return last
}
