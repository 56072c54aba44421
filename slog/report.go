package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/domsift/domsift"
)

// Ensure LoggingReportWriter implements domsift.ReportWriter.
var _ domsift.ReportWriter = (*LoggingReportWriter)(nil)

// LoggingReportWriter wraps a ReportWriter with debug logging.
type LoggingReportWriter struct {
	next   domsift.ReportWriter
	logger *slog.Logger
}

// NewLoggingReportWriter creates a new LoggingReportWriter.
func NewLoggingReportWriter(next domsift.ReportWriter, logger *slog.Logger) *LoggingReportWriter {
	return &LoggingReportWriter{next: next, logger: logger}
}

// WriteReport delegates to the wrapped writer and logs the operation.
func (w *LoggingReportWriter) WriteReport(ctx context.Context, report *domsift.CrawlReport) (path string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write report",
			"domain", report.Domain,
			"pages", report.PageCount,
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteReport(ctx, report)
}
