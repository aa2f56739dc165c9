package health

import "errors"

var (
	ErrProviderNotFound   = errors.New("provider not found")
	ErrMedicationNotFound = errors.New("medication not found")
	ErrInvalidTransition  = errors.New("dose already taken or missed")
)
