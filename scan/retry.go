package scan

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/beagle"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure RetryFetcher implements beagle.Fetcher at compile time.
var _ beagle.Fetcher = (*RetryFetcher)(nil)

// RetryFetcher retries failed fetches with backoff. Retries belong to the
// fetch layer; the scan pipeline itself never retries.
type RetryFetcher struct {
	next   beagle.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewRetryFetcher wraps next. A nil delays slice uses DefaultRetryDelays;
// an empty one disables retries. The logger may be nil.
func NewRetryFetcher(next beagle.Fetcher, delays []time.Duration, logger *slog.Logger) *RetryFetcher {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return &RetryFetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the fetch once plus one retry per configured delay.
// EPARSE and EINVALID failures are returned without retrying.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := f.next.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if f.logger != nil {
			f.logger.Debug("retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// Close delegates to the wrapped fetcher.
func (f *RetryFetcher) Close() error {
	return f.next.Close()
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	switch beagle.ErrorCode(err) {
	case beagle.EPARSE, beagle.EINVALID:
		return false
	}
	return true
}
