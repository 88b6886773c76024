package client

import (
	"fmt"
	"time"
)

// ConnectionError means Tally could not be reached at all.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to Tally at %s: make sure Tally is running and its HTTP server is enabled on that port", e.Addr)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

type Kind string

const (
	KindTimeout Kind = "timeout"
	KindStatus  Kind = "status"
	KindParse   Kind = "parse"
	KindRequest Kind = "request"
)

// TransportError covers every failure after a connection could be attempted.
type TransportError struct {
	Kind       Kind
	StatusCode int
	Timeout    time.Duration
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("tally request timed out after %s", e.Timeout)
	case KindStatus:
		return fmt.Sprintf("tally responded with HTTP %d", e.StatusCode)
	case KindParse:
		return fmt.Sprintf("failed to parse tally response: %v", e.Err)
	default:
		return fmt.Sprintf("tally request failed: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
