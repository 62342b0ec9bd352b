package coingecko_common

import (
	"errors"
	"fmt"
)

// ErrRateLimited signals an HTTP 429 from the upstream API.
// The executor retries these together with transport failures.
var ErrRateLimited = errors.New("rate limited by upstream")

// TransportError wraps a connect/DNS/timeout-class failure from the HTTP client
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError represents a terminal non-2xx response that is not a rate limit
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// ParseError wraps a failure to decode an upstream response body
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse upstream response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
