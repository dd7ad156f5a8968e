package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports unusable input text. It is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrEmptyInput is returned when the text is empty after trimming
var ErrEmptyInput = &ValidationError{Message: "text cannot be empty"}

// TrackerError is a failed call to the issue tracker.
// StatusCode is 0 when the request never got a response.
type TrackerError struct {
	StatusCode int
	Message    string
}

func (e *TrackerError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("tracker request failed: %s", e.Message)
	}
	return fmt.Sprintf("tracker returned status %d: %s", e.StatusCode, e.Message)
}

// UnexpectedError wraps any failure outside the known taxonomy
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// ErrorKind is the coarse classification callers branch on
type ErrorKind string

const (
	KindNone           ErrorKind = ""
	KindValidation     ErrorKind = "validation"
	KindTrackerAuth    ErrorKind = "tracker_auth"
	KindTrackerGeneric ErrorKind = "tracker"
	KindUnexpected     ErrorKind = "unexpected"
)

// Classify maps an error onto the taxonomy
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}

	var tracker *TrackerError
	if errors.As(err, &tracker) {
		if tracker.StatusCode == http.StatusUnauthorized {
			return KindTrackerAuth
		}
		return KindTrackerGeneric
	}

	return KindUnexpected
}

// IsAuthError reports whether err is a tracker authentication failure
func IsAuthError(err error) bool {
	return Classify(err) == KindTrackerAuth
}

// IsNotFound reports whether err is a tracker 404
func IsNotFound(err error) bool {
	var tracker *TrackerError
	return errors.As(err, &tracker) && tracker.StatusCode == http.StatusNotFound
}
