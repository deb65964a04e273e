package common

import "strings"

// HasAny returns true if s contains any of the substrings.
// Matching is case-sensitive; callers normalize case first.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EscapeSpaces replaces every space with %20 and leaves all other characters
// as they are.
func EscapeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
