package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRenderFailed marks a slide render that could not produce an
	// image at all (e.g. zero usable fonts after the fallback cascade).
	ErrRenderFailed = errors.New("render failed")
)
