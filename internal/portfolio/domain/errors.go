package domain

import "errors"

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// RenderError is the single failure signal of a render attempt. No output
// accompanies it.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return "pdf generation failed: " + e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
