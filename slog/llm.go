package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/domsift/domsift"
)

// Ensure LoggingURLSelector implements domsift.URLSelector.
var _ domsift.URLSelector = (*LoggingURLSelector)(nil)

// LoggingURLSelector wraps a URLSelector with debug logging.
type LoggingURLSelector struct {
	next   domsift.URLSelector
	logger *slog.Logger
}

// NewLoggingURLSelector creates a new LoggingURLSelector.
func NewLoggingURLSelector(next domsift.URLSelector, logger *slog.Logger) *LoggingURLSelector {
	return &LoggingURLSelector{next: next, logger: logger}
}

// SelectURLs delegates to the wrapped selector and logs the operation.
func (s *LoggingURLSelector) SelectURLs(ctx context.Context, objective string, candidates []string, domain string, max int) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url selection",
			"domain", domain,
			"candidates", len(candidates),
			"selected", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SelectURLs(ctx, objective, candidates, domain, max)
}

// Ensure LoggingAnalyzer implements domsift.Analyzer.
var _ domsift.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with debug logging.
type LoggingAnalyzer struct {
	next   domsift.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next domsift.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the operation.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, objective string, pageURL string, content string) (summary string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("analyze",
			"url", pageURL,
			"content_bytes", len(content),
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, objective, pageURL, content)
}
