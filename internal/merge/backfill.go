package merge

import (
	"roll-call/internal/identity"
	"roll-call/internal/poll"
	"roll-call/internal/roster"
)

// BackfillNames fills blank Full name / Sortable name cells for students
// the poll export knows names for. Occupied cells are never touched, so
// hand-corrected names survive. Returns the number of cells written.
func BackfillNames(s roster.Sheet, cols *roster.Columns, presence *poll.PresenceSet, out *Outcome) int {
	if cols.FullName == 0 && cols.SortableName == 0 {
		return 0
	}

	filled := 0
	for email, r := range out.Rows {
		n, ok := presence.Name(email)
		if !ok {
			continue
		}

		if cols.FullName != 0 && n.Full() != "" && identity.IsBlank(s.Cell(r, cols.FullName)) {
			s.SetString(r, cols.FullName, n.Full())
			filled++
		}
		if cols.SortableName != 0 && n.Sortable() != "" && identity.IsBlank(s.Cell(r, cols.SortableName)) {
			s.SetString(r, cols.SortableName, n.Sortable())
			filled++
		}
	}

	return filled
}
