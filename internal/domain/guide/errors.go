package guide

import "errors"

var (
	ErrGuideNotFound = errors.New("guide not found")
	ErrNoGuideOpen   = errors.New("no guide is open")
)
