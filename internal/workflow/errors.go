package workflow

import "errors"

var (
	// ErrNotFound is returned when the episode, series or movie is gone.
	ErrNotFound = errors.New("not found")
	// ErrUnknownSeason is returned when the series has no such season.
	ErrUnknownSeason = errors.New("unknown season")
)
