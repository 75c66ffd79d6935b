// Package normalize canonicalizes user-supplied keys before they are
// stored or used in a lookup, so the same person or group always matches.
package normalize

import "strings"

// Email trims surrounding whitespace and lower-cases the address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BloodGroup trims whitespace and upper-cases a blood group ("b+" -> "B+").
func BloodGroup(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// QueryParam trims whitespace from a query string value, preserving case.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
