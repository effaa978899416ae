package poll

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"roll-call/internal/identity"
	"roll-call/internal/logger"
)

// Mode selects how a poll record counts as "present".
type Mode string

const (
	// ModeBlanket marks a student present if their email is listed at
	// all, regardless of other column content.
	ModeBlanket Mode = "blanket"
	// ModeSubstring marks a student present if at least one column whose
	// header contains the search string has a non-empty value in their row.
	ModeSubstring Mode = "substring"
)

// ErrMissingEmailColumn indicates the poll export has no Email column,
// so there is nothing to join on.
var ErrMissingEmailColumn = errors.New("poll report must contain a column named 'Email'")

// ErrNoStudents indicates the export parsed fine but contained no valid
// student emails. Proceeding would write 0 for the whole roster.
var ErrNoStudents = errors.New("no valid student emails were found in the poll report")

// Name holds a student's name parts as exported by the polling tool.
type Name struct {
	First string
	Last  string
}

// Full returns "First Last".
func (n Name) Full() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// Sortable returns "Last, First", degrading to whichever part exists.
func (n Name) Sortable() string {
	switch {
	case n.Last != "" && n.First != "":
		return n.Last + ", " + n.First
	case n.Last != "":
		return n.Last
	default:
		return n.First
	}
}

// PresenceSet is the per-run mapping from normalized identifier to
// present, plus the name metadata the export carried. Recomputed fresh
// every run; never persisted.
type PresenceSet struct {
	present map[string]bool
	names   map[string]Name

	// SkippedInvalid counts rows dropped for malformed identifiers.
	SkippedInvalid int
}

// Present reports whether a normalized identifier attended.
func (p *PresenceSet) Present(email string) bool {
	return p.present[email]
}

// Size returns the number of present identifiers.
func (p *PresenceSet) Size() int {
	return len(p.present)
}

// Emails returns the present identifiers in sorted order, so appended
// roster rows come out in a deterministic order.
func (p *PresenceSet) Emails() []string {
	emails := make([]string, 0, len(p.present))
	for e := range p.present {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails
}

// Name returns the name metadata for a normalized identifier.
func (p *PresenceSet) Name(email string) (Name, bool) {
	n, ok := p.names[email]
	return n, ok
}

// ExtractPresence computes the presence set from a dataset under the
// given mode. search is the header substring for ModeSubstring and is
// ignored otherwise.
func ExtractPresence(ds *Dataset, mode Mode, search string) (*PresenceSet, error) {
	emailCol := ds.HeaderIndex("Email")
	if emailCol < 0 {
		return nil, ErrMissingEmailColumn
	}
	firstCol := ds.HeaderIndex("First name")
	lastCol := ds.HeaderIndex("Last name")

	var matchCols []int
	if mode == ModeSubstring {
		matchCols = matchingColumns(ds.Headers, search)
		if len(matchCols) == 0 {
			return nil, fmt.Errorf("no poll column header contains %q", search)
		}
	}

	set := &PresenceSet{
		present: make(map[string]bool),
		names:   make(map[string]Name),
	}

	for i, record := range ds.Records {
		email := identity.Normalize(ds.Field(record, emailCol))
		if email == "" {
			continue // fully blank identifier cells are just padding rows
		}
		if !identity.Valid(email) {
			set.SkippedInvalid++
			logger.LogRowError("poll", i+2, fmt.Sprintf("invalid identifier %q", email))
			continue
		}

		set.names[email] = Name{
			First: ds.Field(record, firstCol),
			Last:  ds.Field(record, lastCol),
		}

		switch mode {
		case ModeSubstring:
			if answeredAny(ds, record, matchCols) {
				set.present[email] = true
			}
		default:
			set.present[email] = true
		}
	}

	if len(set.names) == 0 {
		return nil, ErrNoStudents
	}
	return set, nil
}

// matchingColumns returns indices of headers containing search,
// case-insensitively. The test is a raw substring match; header
// whitespace and punctuation are taken as-is.
func matchingColumns(headers []string, search string) []int {
	needle := strings.ToLower(search)
	var cols []int
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), needle) {
			cols = append(cols, i)
		}
	}
	return cols
}

func answeredAny(ds *Dataset, record []string, cols []int) bool {
	for _, c := range cols {
		if ds.Field(record, c) != "" {
			return true
		}
	}
	return false
}
