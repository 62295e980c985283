package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles HTTP client and resilience settings.
type HTTPClientConfig struct {
	Client    *http.Client
	Backoff   BackoffConfig
	UserAgent string
}

// DefaultBackoff is what the upstream clients use unless told otherwise.
var DefaultBackoff = BackoffConfig{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

var (
	ErrRateLimited      = errors.New("rate limited")
	ErrServerError      = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrCircuitOpen      = errors.New("circuit breaker open")
	errNoHTTPClient     = errors.New("http client not configured")
	errInvalidConfig    = errors.New("invalid backoff configuration")
)

// StatusError is a non-retryable upstream response (4xx other than 429).
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d", ErrUnexpectedStatus, e.Code)
	}
	return fmt.Sprintf("%v: %d: %s", ErrUnexpectedStatus, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// NewCircuitBreaker returns a breaker with the settings shared by all upstream clients.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		IsSuccessful: func(err error) bool {
			// A caller mistake (bad date, unknown page) says nothing about upstream health.
			var se *StatusError
			return err == nil || errors.As(err, &se)
		},
	})
}

// DoRequestWithResilience executes the HTTP request with retries, exponential backoff,
// and a circuit breaker. The caller owns the returned response body.
func DoRequestWithResilience(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}

		// Ensure the request obeys context cancellation.
		req = req.WithContext(ctx)
		if cfg.UserAgent != "" {
			req.Header.Set("User-Agent", cfg.UserAgent)
		}
		req.Header.Set("Accept", "application/json")

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}

			defer resp.Body.Close()

			// Handle rate limiting and server errors explicitly.
			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				return nil, ErrRateLimited
			case resp.StatusCode >= 500:
				return nil, fmt.Errorf("%w: %d", ErrServerError, resp.StatusCode)
			default:
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
			}
		})

		if err == nil {
			// Success.
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}

		var se *StatusError
		if errors.As(err, &se) {
			return nil, err
		}

		lastErr = err
		if attempt >= cfg.Backoff.MaxRetries {
			return nil, lastErr
		}

		// Backoff with exponential delay.
		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
			// continue to next attempt
		}

		attempt++
	}
}
