package entity

import (
	"errors"
	"fmt"
)

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

// MediaError reports a failed transcode or upload step. The wrapped cause
// is preserved for logging.
type MediaError struct {
	Step string
	Err  error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media processing failed at %s: %v", e.Step, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}

func NewMediaError(step string, err error) *MediaError {
	return &MediaError{Step: step, Err: err}
}
