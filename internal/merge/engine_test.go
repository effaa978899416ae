package merge

import (
	"testing"

	"roll-call/internal/poll"
	"roll-call/internal/roster"
)

func presenceFrom(t *testing.T, records ...[]string) *poll.PresenceSet {
	t.Helper()
	ds := &poll.Dataset{
		Headers: []string{"Email", "First name", "Last name"},
		Records: records,
	}
	set, err := poll.ExtractPresence(ds, poll.ModeBlanket, "")
	if err != nil {
		t.Fatalf("ExtractPresence failed: %v", err)
	}
	return set
}

func mergeFixture() (*roster.MemorySheet, *roster.Columns) {
	s := roster.NewMemorySheet([][]string{
		{"Email", "Full name", "Sortable name", "23-Jan", "10-Feb"},
		{"", "", "", "Lecture 1", "Lecture 2"},
		{"alice@x.edu", "Alice Adams", "Adams, Alice", "1", ""},
		{"bob@x.edu", "Bob Brown", "Brown, Bob", "", ""},
		{"dave@x.edu", "Dave Drum", "Drum, Dave", "0", "excused"},
	})
	cols, err := roster.LocateColumns(s)
	if err != nil {
		panic(err)
	}
	return s, cols
}

const lecture2Col = 5

func TestMergeDecisionTable(t *testing.T) {
	s, cols := mergeFixture()
	presence := presenceFrom(t, []string{"bob@x.edu", "Bob", "Brown"})

	out := Merge(s, cols, lecture2Col, presence)

	// present, any cell -> 1
	if got := s.Cell(3+1, lecture2Col); got != "1" {
		t.Errorf("bob's cell = %q, expected 1", got)
	}
	// absent, blank cell -> 0
	if got := s.Cell(3, lecture2Col); got != "0" {
		t.Errorf("alice's cell = %q, expected 0", got)
	}
	// absent, occupied cell -> untouched
	if got := s.Cell(5, lecture2Col); got != "excused" {
		t.Errorf("dave's cell = %q, manual annotation must survive", got)
	}

	if out.PresentMarked != 1 {
		t.Errorf("PresentMarked = %d, expected 1", out.PresentMarked)
	}
	if out.ZerosWritten != 1 {
		t.Errorf("ZerosWritten = %d, expected 1", out.ZerosWritten)
	}
	for _, email := range []string{"alice@x.edu", "bob@x.edu", "dave@x.edu"} {
		if !out.Handled[email] {
			t.Errorf("Expected %s in handled set", email)
		}
	}
}

func TestMergePresenceOverwritesStaleZero(t *testing.T) {
	// A late poll response still marks true attendance, even over a
	// hand-entered 0.
	s, cols := mergeFixture()
	s.SetString(4, lecture2Col, "0")

	presence := presenceFrom(t, []string{"bob@x.edu", "Bob", "Brown"})
	Merge(s, cols, lecture2Col, presence)

	if got := s.Cell(4, lecture2Col); got != "1" {
		t.Errorf("bob's cell = %q, presence must win over a stale 0", got)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	s, cols := mergeFixture()
	presence := presenceFrom(t, []string{"bob@x.edu", "Bob", "Brown"})

	Merge(s, cols, lecture2Col, presence)
	first := snapshot(s)

	Merge(s, cols, lecture2Col, presence)
	second := snapshot(s)

	if first != second {
		t.Errorf("Second merge changed the sheet:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestMergeNormalizesRosterIdentifiers(t *testing.T) {
	s := roster.NewMemorySheet([][]string{
		{"Email", "10-Feb"},
		{"", "Lecture 2"},
		{"  Bob@X.EDU  ", ""},
	})
	cols, err := roster.LocateColumns(s)
	if err != nil {
		t.Fatal(err)
	}

	presence := presenceFrom(t, []string{"bob@x.edu", "Bob", "Brown"})
	out := Merge(s, cols, 2, presence)

	if got := s.Cell(3, 2); got != "1" {
		t.Errorf("Cell = %q, expected 1 after normalized match", got)
	}
	if !out.Handled["bob@x.edu"] {
		t.Error("Handled set must hold the normalized identifier")
	}
}

func TestMergeSkipsInvalidRosterRows(t *testing.T) {
	s := roster.NewMemorySheet([][]string{
		{"Email", "10-Feb"},
		{"", "Lecture 2"},
		{"not-an-email", ""},
		{"", ""},
		{"bob@x.edu", ""},
	})
	cols, err := roster.LocateColumns(s)
	if err != nil {
		t.Fatal(err)
	}

	presence := presenceFrom(t, []string{"bob@x.edu", "Bob", "Brown"})
	out := Merge(s, cols, 2, presence)

	if out.SkippedInvalid != 1 {
		t.Errorf("SkippedInvalid = %d, expected 1", out.SkippedInvalid)
	}
	if got := s.Cell(3, 2); got != "" {
		t.Errorf("Invalid row's cell = %q, expected untouched", got)
	}
	if got := s.Cell(5, 2); got != "1" {
		t.Errorf("bob's cell = %q, expected 1", got)
	}
}

// snapshot flattens the sheet for equality checks
func snapshot(s *roster.MemorySheet) string {
	out := ""
	for r := 1; r <= s.MaxRow(); r++ {
		for c := 1; c <= s.MaxCol(); c++ {
			out += s.Cell(r, c) + "|"
		}
		out += "\n"
	}
	return out
}
