// Package retry wraps the research collaborator with transient-failure
// retries. Page fetches are deliberately not retried: a failed listing
// fetch aborts the traversal and returns partial results instead.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"leadscout/internal/model"
)

// Researcher is a decorator that retries transient failures with
// exponential backoff and jitter before delegating to the wrapped
// model.Researcher.
type Researcher struct {
	inner      model.Researcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewResearcher wraps a model.Researcher with retry logic. maxRetries is
// the number of additional attempts after the first failure; baseDelay is
// the delay before the first retry, doubled on each subsequent one.
func NewResearcher(inner model.Researcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *Researcher {
	return &Researcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// Research attempts the lookup, retrying on transient errors.
func (r *Researcher) Research(ctx context.Context, req model.ResearchRequest) (*model.CompanyResearch, error) {
	res, err := r.inner.Research(ctx, req)
	if err == nil {
		return res, nil
	}

	if !isRetryable(err) {
		return nil, err
	}

	lastErr := err
	for attempt := 1; attempt <= r.maxRetries; attempt++ {
		delay := r.backoffDelay(attempt, lastErr)

		r.logger.Warn("retrying research after transient error",
			"company", req.CompanyName,
			"attempt", attempt,
			"max_retries", r.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}

		res, err = r.inner.Research(ctx, req)
		if err == nil {
			return res, nil
		}

		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (r *Researcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := r.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)

	return delay
}

// isRetryable returns true if the error represents a transient failure
// worth retrying.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	// A missing credential never fixes itself.
	if errors.Is(err, model.ErrNotConfigured) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == 429 {
			return true
		}
		if httpErr.StatusCode >= 500 {
			return true
		}
		return false
	}

	// Non-HTTP errors (network, DNS, etc.) are retryable.
	return true
}
