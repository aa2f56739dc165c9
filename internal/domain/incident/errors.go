package incident

import "errors"

var (
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrMissingNote       = errors.New("resolution note is required")
)
