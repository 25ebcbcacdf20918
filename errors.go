package wavedit

import "errors"

var (
	// ErrInsufficientSamples is returned by transforms whose minimum length
	// precondition is violated. The input is left untouched.
	ErrInsufficientSamples = errors.New("insufficient samples")
	// ErrMalformedScript is returned when a note script contains a duration
	// that is not an integer.
	ErrMalformedScript = errors.New("malformed note script")

	ErrLoadFailed = errors.New("could not load audio")
	ErrSaveFailed = errors.New("could not save audio")
	ErrReadFailed = errors.New("could not read script")
)
