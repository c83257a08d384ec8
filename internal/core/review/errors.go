package review

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmptyCode is returned when the submitted code is empty or whitespace.
	ErrEmptyCode = errors.New("please enter code to review")

	// ErrEmptyResponse is returned when the service answered with an empty body.
	ErrEmptyResponse = errors.New("the review service returned an empty response")
)

// TransportError wraps a failure of the HTTP call itself.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.Code)
}

// UserMessage converts a submission error into the single line shown to
// the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		statusErr    *StatusError
		transportErr *TransportError
	)

	switch {
	case errors.Is(err, ErrEmptyCode):
		return ErrEmptyCode.Error()
	case errors.Is(err, ErrEmptyResponse):
		return ErrEmptyResponse.Error()
	case errors.As(err, &statusErr):
		return statusErr.Error()
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &transportErr):
		return transportErr.Error()
	default:
		return fmt.Sprintf("request failed: %v", err)
	}
}
