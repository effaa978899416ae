// Package identity centralizes email identifier normalization.
// Both the roster side and the poll side must go through Normalize before
// any equality comparison; duplicating this logic is the easiest way to
// break matching, so it lives here and nowhere else.
package identity

import "strings"

// Normalize canonicalizes an email-like identifier for comparison:
// lowercase, leading/trailing whitespace stripped.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Valid reports whether a normalized identifier passes the minimal
// structural check. Anything without an "@" is a data-quality problem,
// not a student.
func Valid(email string) bool {
	return strings.Contains(email, "@")
}

// IsBlank reports whether a cell value is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
