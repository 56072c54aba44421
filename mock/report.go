package mock

import (
	"context"

	"github.com/domsift/domsift"
)

var _ domsift.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of domsift.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, report *domsift.CrawlReport) (string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, report *domsift.CrawlReport) (string, error) {
	return w.WriteReportFn(ctx, report)
}
