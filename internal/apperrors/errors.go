package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks
// (non-positive amount, unknown or malformed currency symbol).
var ErrValidation = errors.New("validation error")

// ErrRateNotFound indicates that no direct or synthesizable exchange rate
// exists for the requested currency pair in the current snapshot.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrIncompleteRateData indicates that a rate record for the pair exists but
// lacks the rate field required for the requested conversion direction.
var ErrIncompleteRateData = errors.New("incomplete rate data")

// ErrServiceUnavailable indicates that the upstream rate provider could not
// be reached within the retry budget.
var ErrServiceUnavailable = errors.New("rate provider unavailable")

// ErrCircuitOpen indicates that the circuit breaker rejected the call before
// any network I/O was attempted. It is a ServiceUnavailable to callers.
var ErrCircuitOpen = fmt.Errorf("%w: circuit breaker open", ErrServiceUnavailable)

// UpstreamError carries the HTTP status returned by the rate provider.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream provider returned status %d: %s", e.StatusCode, e.Message)
}

// IsClient reports whether the upstream failure is a 4xx-class error.
// Client-class errors are never retried.
func (e *UpstreamError) IsClient() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}
