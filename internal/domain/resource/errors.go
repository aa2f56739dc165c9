package resource

import "errors"

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrUnknownQuestion  = errors.New("unknown assessment question")
	ErrUnknownAnswer    = errors.New("answer is not one of the question's options")
)
