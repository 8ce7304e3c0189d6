// Package normalize standardizes user-supplied field values before
// validation and storage.
//
// Email case is preserved: leader login matches the stored address exactly,
// and rewriting the case here would silently change login behavior for
// records registered before this service. Case-insensitive variants are
// stored separately as *_ci fields for admin search.
package normalize

import "strings"

// Text trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Email trims surrounding whitespace. Case is intentionally preserved.
func Email(s string) string {
	return strings.TrimSpace(s)
}

// Phone trims whitespace and drops internal spaces so "98765 43210" and
// "9876543210" store identically.
func Phone(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

// Action lowercases a payment action token.
func Action(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
