package viewstate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when an operation targets an id the store does not hold.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when adding a record whose id is already stored.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrDraftOpen is returned when a second draft is opened on the same form.
	ErrDraftOpen = errors.New("a draft is already open")
	// ErrNoDraft is returned when a form operation needs an open draft.
	ErrNoDraft = errors.New("no draft is open")
	// ErrUnknownField is returned for field names the form does not declare.
	ErrUnknownField = errors.New("unknown form field")
	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition is returned for navigation events illegal in the current mode.
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrUnknownTab is returned when navigating to a tab that was never declared.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrNoSelection is returned when an operation needs a selected record.
	ErrNoSelection = errors.New("no record selected")
)

// ValidationError lists the fields that blocked a submission.
type ValidationError struct {
	Missing []string
	Invalid map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		keys := make([]string, 0, len(e.Invalid))
		for k := range e.Invalid {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Invalid[k]))
		}
		parts = append(parts, "invalid "+strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
