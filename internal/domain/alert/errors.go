package alert

import "errors"

var (
	ErrAlreadySending = errors.New("an alert is already being sent")
	ErrNotSending     = errors.New("no alert is being sent")
	ErrNoRecipients   = errors.New("no emergency recipients")
)
