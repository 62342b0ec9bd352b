package coingecko_common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// SleepFunc suspends the caller for the given duration, returning early
// with the context error if the context is cancelled. Injectable for tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	MaxRetries        int           // Number of retries after the initial attempt
	BaseBackoff       time.Duration // Delay before the first retry, doubled each retry
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRetryOptions returns default retry options
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:        3,
		BaseBackoff:       1000 * time.Millisecond,
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities.
// Transport failures and HTTP 429 responses share one retry budget per call;
// any other non-2xx status is terminal on first occurrence. The backoff
// sequence is deterministic (base, 2x base, 4x base, ...) with no jitter so
// the retry cadence stays caller-observable.
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
	Sleep          SleepFunc
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
		Sleep:          sleepWithContext,
	}
}

// SetStatusHandler sets the status handler for this Client
func (c *HTTPClientWithRetries) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

// ExecuteRequest executes an HTTP request with retry logic.
// On success it returns the response, its body and the duration of the last
// attempt. Retries are sequential: the call suspends through each backoff.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) (*http.Response, []byte, time.Duration, error) {
	var lastErr error

	for attempt := 0; attempt <= c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.Opts.LogPrefix, attempt, c.Opts.MaxRetries, lastErr)

			if c.StatusHandler != nil {
				c.StatusHandler.OnRetry()
			}

			backoffDuration := backoffDelay(c.Opts.BaseBackoff, attempt)
			log.Printf("%s: Waiting %.2fs before retry", c.Opts.LogPrefix, backoffDuration.Seconds())
			if err := c.Sleep(req.Context(), backoffDuration); err != nil {
				return nil, nil, 0, err
			}
		}

		// Rate limit before executing the request
		if c.LimiterManager != nil {
			limiter := c.LimiterManager.GetLimiterForURL(req.URL)
			if limiter != nil {
				if err := limiter.Wait(req.Context()); err != nil {
					if c.StatusHandler != nil {
						c.StatusHandler.OnRequest("error")
					}
					return nil, nil, 0, fmt.Errorf("rate limiter wait failed: %w", err)
				}
			}
		}

		requestStart := time.Now()
		resp, err := c.Client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			if ctxErr := req.Context().Err(); ctxErr != nil {
				return nil, nil, requestDuration, ctxErr
			}
			lastErr = &TransportError{Err: err}
			if c.StatusHandler != nil {
				c.StatusHandler.OnRequest("error")
			}
			continue
		}

		responseBody, err := processResponse(resp, requestDuration)
		if err != nil {
			resp.Body.Close()
			if errors.Is(err, ErrRateLimited) {
				lastErr = err
				if c.StatusHandler != nil {
					c.StatusHandler.OnRequest("rate_limited")
				}
				continue
			}

			if c.StatusHandler != nil {
				c.StatusHandler.OnRequest("error")
			}
			return nil, nil, requestDuration, err
		}

		if c.StatusHandler != nil {
			c.StatusHandler.OnRequest("success")
		}
		return resp, responseBody, requestDuration, nil
	}

	return nil, nil, 0, fmt.Errorf("all %d attempts failed, last error: %w",
		c.Opts.MaxRetries+1, lastErr)
}

// backoffDelay returns the deterministic delay before the given retry attempt:
// base before the first retry, doubling each retry after that
func backoffDelay(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 1 {
		return baseBackoff
	}
	return baseBackoff << uint(attempt-1)
}

// sleepWithContext is the default SleepFunc
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// processResponse reads the HTTP response body, classifying non-2xx statuses
func processResponse(resp *http.Response, requestDuration time.Duration) ([]byte, error) {
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			return nil, fmt.Errorf("%w (status %d), retry after %s: %s",
				ErrRateLimited, resp.StatusCode, retryAfter, string(body))
		}

		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response after %.2fs: %w", requestDuration.Seconds(), err)
	}

	return responseBody, nil
}
