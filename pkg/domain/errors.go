package domain

import "errors"

// ErrUnknownAPI is returned when the endpoint answered with neither a header nor an error.
var ErrUnknownAPI = errors.New("unknown API error")

// ErrCacheMiss is returned by a HeaderCache holding no (unexpired) value.
var ErrCacheMiss = errors.New("cache miss")

// ErrInvalidIntent is returned when an intent name cannot be parsed.
var ErrInvalidIntent = errors.New("invalid intent")

// APIError is a failure reported by the upstream endpoint in its response body.
// Its message is shown to the user verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// StaleError reports a failed fetch that was answered with previously cached data.
// The failure message is kept so it can still be shown.
type StaleError struct {
	Err error
}

func (e *StaleError) Error() string {
	return e.Err.Error()
}

func (e *StaleError) Unwrap() error {
	return e.Err
}
