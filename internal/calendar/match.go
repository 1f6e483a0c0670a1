package calendar

import "strings"

// FindMatch pairs a target event with the first candidate whose title,
// case-insensitively, is a substring of the target's title. Callers are
// expected to restrict candidates to the target's day. Both titles must be
// non-empty for a match to be considered; ties are broken by candidate
// order. A missing match is a normal outcome, not an error.
func FindMatch(target Event, candidates []Event) (Event, bool) {
	if target.Title == "" {
		return Event{}, false
	}

	targetTitle := strings.ToLower(target.Title)
	for _, candidate := range candidates {
		if candidate.Title == "" {
			continue
		}
		if strings.Contains(targetTitle, strings.ToLower(candidate.Title)) {
			return candidate, true
		}
	}

	return Event{}, false
}
