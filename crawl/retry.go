package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/termsift/termsift"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry fetches a URL, retrying failed attempts with the given
// backoff delays (one initial attempt plus one retry per delay). Pass nil
// delays for DefaultRetryDelays. A canceled context stops retrying
// immediately.
func FetchWithRetry(ctx context.Context, fetcher termsift.Fetcher, url string, delays []time.Duration, logger *slog.Logger) (string, error) {
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	if logger == nil {
		logger = slog.Default()
	}
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		logger.Warn("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"delay", delays[attempt],
			"err", err,
		)

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
