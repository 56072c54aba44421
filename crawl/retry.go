package crawl

import (
	"context"
	"time"
)

// FetchFunc fetches a URL and returns its raw content.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc receives printf-style progress and retry messages. A nil
// LogFunc disables logging.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays is the backoff schedule applied to failed fetches
// when the caller does not supply one.
var DefaultRetryDelays = []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}

// FetchWithRetry calls fn with the default backoff schedule.
func FetchWithRetry(ctx context.Context, url string, fn FetchFunc, logf LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fn, logf, DefaultRetryDelays)
}

// FetchWithRetryDelays calls fn once, then retries after each delay in
// delays until fn succeeds or the schedule is exhausted. The last error
// is returned when every attempt fails.
func FetchWithRetryDelays(ctx context.Context, url string, fn FetchFunc, logf LogFunc, delays []time.Duration) (string, error) {
	content, err := fn(ctx, url)
	if err == nil {
		return content, nil
	}
	for i, delay := range delays {
		if logf != nil {
			logf("fetch %s failed (attempt %d/%d), retrying in %s: %v", url, i+1, len(delays)+1, delay, err)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		content, err = fn(ctx, url)
		if err == nil {
			return content, nil
		}
	}
	return "", err
}
