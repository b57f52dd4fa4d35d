// Package errors defines the single failure kind surfaced by the gateway when
// the astrology service answers with a non-success status.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category tells callers whether a failed request was rejected because of its
// input or because the service could not serve it.
type Category int

const (
	// ServiceError covers 5xx answers, 408, 429 and any unexpected status.
	ServiceError Category = iota

	// ClientError covers 4xx answers other than 408 and 429: the birth data,
	// date or timezone sent by the caller was refused.
	ClientError
)

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case ServiceError:
		return "ServiceError"
	case ClientError:
		return "ClientError"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// RequestFailure is returned exactly once per call whenever the service
// responds with a non-2xx status. Nothing retries it.
type RequestFailure struct {
	Operation  string   // gateway operation, e.g. "compute natal chart"
	StatusCode int      // HTTP status code
	Status     string   // HTTP status text, e.g. "Bad Request"
	Category   Category // derived from StatusCode
	Body       string   // raw response body (truncated), never parsed
}

// Error implements the error interface.
func (e *RequestFailure) Error() string {
	return fmt.Sprintf("%s: [%s] HTTP %d %s", e.Operation, e.Category, e.StatusCode, e.Status)
}

// As extracts a *RequestFailure from err's chain.
func As(err error) (*RequestFailure, bool) {
	var rf *RequestFailure
	if stderrors.As(err, &rf) {
		return rf, true
	}
	return nil, false
}

// IsClientError reports whether err is a RequestFailure caused by rejected input.
func IsClientError(err error) bool {
	rf, ok := As(err)
	return ok && rf.Category == ClientError
}

// IsServiceError reports whether err is a RequestFailure caused by the service.
func IsServiceError(err error) bool {
	rf, ok := As(err)
	return ok && rf.Category == ServiceError
}
