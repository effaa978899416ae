package merge

import (
	"roll-call/internal/identity"
	"roll-call/internal/poll"
	"roll-call/internal/roster"
)

// AppendMissing adds a roster row for every identifier in the presence
// set that the merge pass did not handle. Appended students get their
// email, names when the poll export carried them, and a 1 in this run's
// lecture column (they came from the presence set, so they attended).
// Rows are never removed.
func AppendMissing(s roster.Sheet, cols *roster.Columns, lectureCol int, presence *poll.PresenceSet, out *Outcome) int {
	lastRow := lastRowWithEmail(s, cols.Email)
	appendRow := lastRow + 1

	styleSrc := lastRow
	if styleSrc < firstStudentRow {
		styleSrc = firstStudentRow
	}
	styler, canStyle := s.(roster.RowStyler)
	maxCol := s.MaxCol()

	added := 0
	for _, email := range presence.Emails() {
		if out.Handled[email] {
			continue
		}

		if canStyle {
			styler.CopyRowStyle(styleSrc, appendRow, maxCol)
		}

		s.SetString(appendRow, cols.Email, email)
		if n, ok := presence.Name(email); ok {
			if cols.FullName != 0 && n.Full() != "" {
				s.SetString(appendRow, cols.FullName, n.Full())
			}
			if cols.SortableName != 0 && n.Sortable() != "" {
				s.SetString(appendRow, cols.SortableName, n.Sortable())
			}
		}
		s.SetInt(appendRow, lectureCol, 1)

		out.Handled[email] = true
		out.Rows[email] = appendRow
		appendRow++
		added++
	}

	return added
}

// lastRowWithEmail finds the last student row holding a non-empty email.
// The sheet's MaxRow can run past the roster when formatting touched
// rows below it, so the email column is what counts.
func lastRowWithEmail(s roster.Sheet, emailCol int) int {
	last := firstStudentRow - 1
	for r := firstStudentRow; r <= s.MaxRow(); r++ {
		if !identity.IsBlank(s.Cell(r, emailCol)) {
			last = r
		}
	}
	return last
}
