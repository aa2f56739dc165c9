package wellness

import "errors"

var (
	ErrMeditationNotFound = errors.New("meditation not found")
	ErrCrisisNotFound     = errors.New("crisis resource not found")
	ErrNotPlaying         = errors.New("no meditation is playing")
	ErrNotPaused          = errors.New("meditation is not paused")
	ErrBadDuration        = errors.New("unrecognised duration")
)
