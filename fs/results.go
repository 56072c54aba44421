// Package fs provides file-based persistence for crawl results.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/domsift/domsift"
)

// Ensure ResultWriter implements domsift.ReportWriter at compile time.
var _ domsift.ReportWriter = (*ResultWriter)(nil)

// ResultWriter writes crawl reports as JSON files, one per domain.
type ResultWriter struct {
	baseDir string
}

// NewResultWriter creates a ResultWriter that writes to the given
// directory. The directory is created on first write.
func NewResultWriter(baseDir string) *ResultWriter {
	return &ResultWriter{baseDir: baseDir}
}

// WriteReport writes the report to <baseDir>/<domain>.json and returns
// the path. The report is written to a temporary file and renamed into
// place, so readers never observe a partial report.
func (w *ResultWriter) WriteReport(ctx context.Context, report *domsift.CrawlReport) (string, error) {
	if report == nil {
		return "", domsift.Errorf(domsift.EINVALID, "report required")
	}
	if report.Domain == "" {
		return "", domsift.Errorf(domsift.EINVALID, "report domain required")
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(w.baseDir, report.Domain+".json")
	tmpPath := finalPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return finalPath, nil
}
