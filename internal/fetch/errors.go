package fetch

import (
	"errors"
	"fmt"
)

// ErrEmptyResult marks a source that was reachable and well-formed but
// produced no usable data. The failover chain treats it like any other
// failure and moves on to the next source.
var ErrEmptyResult = errors.New("source returned no usable data")

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// ParseError is a body that could not be decoded, including bodies cut
// short by the byte cap. It is distinct from a network failure.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NetworkError is a connect, timeout, or transport-level read failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
