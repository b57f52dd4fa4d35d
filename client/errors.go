package client

import (
	"errors"

	apierrors "github.com/hectorherrerafullstack/astroApi/client/internal/errors"
	"github.com/hectorherrerafullstack/astroApi/client/internal/types"
)

// RequestFailure is returned whenever the service answers with a non-success
// status. Status carries the HTTP status text.
type RequestFailure = apierrors.RequestFailure

// FailureCategory separates rejected input from service unavailability.
type FailureCategory = apierrors.Category

const (
	ClientError  = apierrors.ClientError
	ServiceError = apierrors.ServiceError
)

// ErrInvalidInput is wrapped by errors for arguments rejected before sending.
var ErrInvalidInput = types.ErrInvalidInput

// ErrNoStoredChart is returned by LoadChart when the store holds no chart.
var ErrNoStoredChart = errors.New("no natal chart stored")

// AsRequestFailure extracts the RequestFailure from err, if any.
func AsRequestFailure(err error) (*RequestFailure, bool) { return apierrors.As(err) }

// IsRequestFailure reports whether err carries a RequestFailure.
func IsRequestFailure(err error) bool {
	_, ok := apierrors.As(err)
	return ok
}

// IsClientError reports whether the service rejected the caller's input.
func IsClientError(err error) bool { return apierrors.IsClientError(err) }

// IsServiceError reports whether the service was unavailable or failed.
func IsServiceError(err error) bool { return apierrors.IsServiceError(err) }
