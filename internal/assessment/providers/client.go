// Package providers contains the external API bindings: geocoding, the
// historical-weather archive, and the PV-production model. Every HTTP-based
// provider goes through the same resilience layer: bounded retries with
// exponential backoff behind a per-provider circuit breaker.
package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited = errors.New("rate limited by provider")
	errServerError = errors.New("provider server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// backoffPolicy controls retry behaviour for one provider.
type backoffPolicy struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// resilientClient bundles the shared HTTP client with a circuit breaker and
// backoff policy for a single provider.
type resilientClient struct {
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff backoffPolicy
}

// newResilientClient builds the standard resilience wrapper used by all
// providers: 3 retries from 500ms up to 5s, breaker half-opening after 2
// minutes.
func newResilientClient(client *http.Client, name string) resilientClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return resilientClient{
		client:  client,
		circuit: cb,
		backoff: backoffPolicy{
			maxRetries:      3,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
	}
}

// do executes the request built by buildRequest, retrying retryable failures
// with exponential backoff. Rate limiting and 5xx responses count as breaker
// failures; an open breaker short-circuits immediately.
func (rc resilientClient) do(ctx context.Context, buildRequest func() (*http.Request, error)) (*http.Response, error) {
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
		req = req.WithContext(ctx)

		result, err := rc.circuit.Execute(func() (interface{}, error) {
			resp, execErr := rc.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		lastErr = err
		if attempt >= rc.backoff.maxRetries {
			return nil, lastErr
		}

		delay := rc.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if rc.backoff.maxInterval > 0 && delay > rc.backoff.maxInterval {
			delay = rc.backoff.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
