package common

import "strings"

// HasAny returns true if s contains any of the substrings, ignoring case.
// Used to classify provider error text into human-readable failure reasons.
func HasAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
