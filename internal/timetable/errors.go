package timetable

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when a required query parameter is absent.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrMalformedResponse is returned when the timetable payload cannot be reshaped.
	ErrMalformedResponse = errors.New("malformed timetable response")
)

// MissingParameterError names the absent query parameter.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingParameter, e.Name)
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
