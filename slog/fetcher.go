// Package slog provides logging decorators for domsift services using the
// standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/domsift/domsift"
)

// Ensure LoggingFetcher implements domsift.Fetcher.
var _ domsift.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   domsift.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next domsift.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingBoundsExtractor implements domsift.BoundsExtractor.
var _ domsift.BoundsExtractor = (*LoggingBoundsExtractor)(nil)

// LoggingBoundsExtractor wraps a BoundsExtractor with debug logging.
type LoggingBoundsExtractor struct {
	next   domsift.BoundsExtractor
	logger *slog.Logger
}

// NewLoggingBoundsExtractor creates a new LoggingBoundsExtractor.
func NewLoggingBoundsExtractor(next domsift.BoundsExtractor, logger *slog.Logger) *LoggingBoundsExtractor {
	return &LoggingBoundsExtractor{next: next, logger: logger}
}

// ExtractBounds logs the extraction and delegates to the wrapped extractor.
func (e *LoggingBoundsExtractor) ExtractBounds(ctx context.Context, url string) (bounds []domsift.ElementBounds, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract bounds",
			"url", url,
			"count", len(bounds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractBounds(ctx, url)
}
