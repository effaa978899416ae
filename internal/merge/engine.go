// Package merge applies the surgical update policy to the roster sheet.
package merge

import (
	"fmt"

	"roll-call/internal/identity"
	"roll-call/internal/logger"
	"roll-call/internal/poll"
	"roll-call/internal/roster"
)

// Student rows start below the two header rows.
const firstStudentRow = 3

// Outcome summarizes one pass of the merge engine over existing rows.
type Outcome struct {
	// Handled holds every normalized identifier that already has a
	// roster row. The appender uses its complement.
	Handled map[string]bool
	// Rows maps handled identifiers to their row index, for name backfill.
	Rows map[string]int

	PresentMarked  int
	ZerosWritten   int
	SkippedInvalid int
}

// Merge walks every student row and applies the update policy for the
// lecture column:
//
//	present               -> write 1, overwriting anything
//	absent, cell blank    -> write 0
//	absent, cell occupied -> leave it alone
//
// Presence always wins so a late poll response still marks true
// attendance, but absence never overwrites manual annotations. That
// asymmetry is the safety guarantee the whole tool hangs on.
func Merge(s roster.Sheet, cols *roster.Columns, lectureCol int, presence *poll.PresenceSet) *Outcome {
	out := &Outcome{
		Handled: make(map[string]bool),
		Rows:    make(map[string]int),
	}

	for r := firstStudentRow; r <= s.MaxRow(); r++ {
		raw := s.Cell(r, cols.Email)
		if identity.IsBlank(raw) {
			continue
		}
		email := identity.Normalize(raw)
		if !identity.Valid(email) {
			out.SkippedInvalid++
			logger.LogRowError("roster", r, fmt.Sprintf("invalid identifier %q", email))
			continue
		}

		if presence.Present(email) {
			s.SetInt(r, lectureCol, 1)
			out.PresentMarked++
		} else if identity.IsBlank(s.Cell(r, lectureCol)) {
			s.SetInt(r, lectureCol, 0)
			out.ZerosWritten++
		}

		out.Handled[email] = true
		out.Rows[email] = r
	}

	return out
}
