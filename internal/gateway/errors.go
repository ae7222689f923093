package gateway

import (
	"fmt"
)

// NetworkError means the request could not be sent or no response was received
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError means the endpoint answered with a non-success status or an unreadable payload
type UpstreamError struct {
	StatusCode int
	Message    string
	Err        error // decode error for malformed payloads
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream error %d: %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
