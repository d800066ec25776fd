package httpclient

import "fmt"

// RetryableError is returned when every attempt against an upstream failed.
type RetryableError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RetryableError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}
