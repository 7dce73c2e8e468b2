// Package errs holds the error taxonomy shared by the token manager, the
// market data service and the HTTP layer.
//
// Callers wrap one of the sentinels with fmt.Errorf("%w: ...") and the HTTP
// layer classifies them with errors.Is.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrCredential: API key or secret is not configured.
	ErrCredential = errors.New("client not initialized: api credentials missing")

	// ErrUpstreamAuth: the credential exchange with the broker failed.
	ErrUpstreamAuth = errors.New("upstream authentication failed")

	// ErrUpstreamData: a market data call failed after a token was obtained.
	ErrUpstreamData = errors.New("upstream data request failed")

	// ErrValidation: the request is invalid (e.g. empty symbol list).
	ErrValidation = errors.New("validation failed")
)

// HTTPStatus maps an error from the service layer to an HTTP status code.
// Only validation errors are client errors; everything else is a 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
