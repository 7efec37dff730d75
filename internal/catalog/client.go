package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cinelibri/internal/metrics"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRateLimit    = 5
	defaultRateBurst    = 10
	defaultMaxRetries   = 3
	defaultInitialDelay = 1500 * time.Millisecond
	defaultMaxDelay     = 12 * time.Second
	defaultTimeout      = 10 * time.Second

	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
)

// Options configures an upstream client. Zero values fall back to defaults.
type Options struct {
	BaseURL  string
	APIKey   string
	Language string

	Timeout      time.Duration
	RateLimit    float64
	RateBurst    int
	MaxRetries   int // negative disables retries
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Consecutive failures that open the breaker, and how long it stays open.
	FailureThreshold uint32
	OpenTimeout      time.Duration

	HTTPClient *http.Client
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RateLimit <= 0 {
		o.RateLimit = defaultRateLimit
	}
	if o.RateBurst <= 0 {
		o.RateBurst = defaultRateBurst
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = defaultInitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = defaultMaxDelay
	}
	if o.FailureThreshold == 0 {
		o.FailureThreshold = defaultFailureThreshold
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = defaultOpenTimeout
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// client performs rate limited, retried and circuit-broken JSON GETs against one upstream.
type client struct {
	name         string
	baseURL      string
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[struct{}]
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
	logger       *zap.Logger
}

func newClient(name string, opts Options) *client {
	opts = opts.withDefaults()
	logger := opts.Logger.With(zap.String("provider", name))

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.SetBreakerState(name, int(to))
		},
	})

	return &client{
		name:         name,
		baseURL:      opts.BaseURL,
		httpClient:   httpClient,
		rateLimiter:  rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		breaker:      breaker,
		maxRetries:   opts.MaxRetries,
		initialDelay: opts.InitialDelay,
		maxDelay:     opts.MaxDelay,
		logger:       logger,
	}
}

// getJSON decodes the response of GET baseURL+endpoint into result.
func (c *client) getJSON(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.doRequest(ctx, endpoint, params, result)
	})

	switch {
	case err == nil:
		metrics.RecordCatalogRequest(c.name, "success")
		return nil
	case errors.Is(err, ErrNotFound):
		metrics.RecordCatalogRequest(c.name, "not_found")
		return err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCatalogRequest(c.name, "rejected")
		return fmt.Errorf("%s: %w: %v", c.name, ErrUnavailable, err)
	default:
		metrics.RecordCatalogRequest(c.name, "error")
		return err
	}
}

func (c *client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var lastErr error
	delay := c.initialDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying catalog request",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr))
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay = minDuration(delay*2, c.maxDelay)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "CineLibri/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			err = json.NewDecoder(resp.Body).Decode(result)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}

		lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		if !shouldRetry(resp.StatusCode) {
			return lastErr
		}
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
				delay = minDuration(time.Duration(secs)*time.Second, c.maxDelay)
			}
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
