package tutorial

import "errors"

var (
	ErrTutorialNotFound = errors.New("tutorial not found")
	ErrUnknownQuestion  = errors.New("unknown quiz question")
	ErrInvalidAnswer    = errors.New("answer is not a valid option")
	ErrNoTutorialOpen   = errors.New("no tutorial is open")
	ErrBadTimestamp     = errors.New("timestamp must be MM:SS or HH:MM:SS")
)
