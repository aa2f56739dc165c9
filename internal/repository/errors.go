package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a row with the same key already exists
	ErrDuplicate = errors.New("duplicate key")

	// ErrInvalidInput is returned when a row cannot be encoded or decoded
	ErrInvalidInput = errors.New("invalid input")
)
