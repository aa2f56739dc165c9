package incident

import "strings"

// ValidateTransition validates a requested status change. Resolving needs a note.
func ValidateTransition(from, to Status, note *string) error {
	valid := false
	switch from {
	case StatusActive:
		valid = to == StatusInvestigating || to == StatusResolved
	case StatusInvestigating:
		valid = to == StatusActive || to == StatusResolved
	case StatusResolved:
		valid = to == StatusActive
	}
	if !valid {
		return ErrInvalidTransition
	}

	if to == StatusResolved {
		if note == nil || strings.TrimSpace(*note) == "" {
			return ErrMissingNote
		}
	}
	return nil
}
