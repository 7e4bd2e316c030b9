package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-lookup/internal/metrics"
	"github.com/i474232898/weather-lookup/internal/weather"
)

const userAgent = "weather-lookup/1.0"

var validate = validator.New()

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// newCircuitBreaker trips after five consecutive failures and probes again
// after the timeout. Requests are never retried.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// doRequest executes a single GET through the circuit breaker. Any transport
// failure or non-2xx status is reported as weather.ErrUpstream. The caller
// owns the returned body.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, rawURL string) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		start := time.Now()
		resp, execErr := client.Do(req)
		if execErr != nil {
			metrics.UpstreamDuration.WithLabelValues(cb.Name(), "error").Observe(time.Since(start).Seconds())
			return nil, execErr
		}
		metrics.UpstreamDuration.WithLabelValues(cb.Name(), statusClass(resp.StatusCode)).Observe(time.Since(start).Seconds())
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w: %v", weather.ErrUpstream, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %w", weather.ErrUpstream, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
