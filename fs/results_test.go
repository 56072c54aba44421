package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() *domsift.CrawlReport {
	return &domsift.CrawlReport{
		Domain:     "example.com",
		RootURL:    "https://example.com/docs/",
		Objective:  "find pricing information",
		StartedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC),
		PageCount:  1,
		Pages: []domsift.PageReport{
			{
				URL:       "https://example.com/docs/pricing",
				Title:     "Pricing",
				Status:    domsift.StatusSuccess,
				Summary:   "Plans start at $10/month.",
				NodeCount: 42,
			},
		},
	}
}

func TestResultWriter_WriteReport(t *testing.T) {
	t.Parallel()

	t.Run("writes report as JSON named after the domain", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewResultWriter(baseDir)

		path, err := w.WriteReport(context.Background(), testReport())

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(baseDir, "example.com.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got domsift.CrawlReport
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "example.com", got.Domain)
		assert.Equal(t, "find pricing information", got.Objective)
		require.Len(t, got.Pages, 1)
		assert.Equal(t, "Plans start at $10/month.", got.Pages[0].Summary)
		assert.Equal(t, 42, got.Pages[0].NodeCount)
	})

	t.Run("creates the output directory", func(t *testing.T) {
		t.Parallel()

		baseDir := filepath.Join(t.TempDir(), "results", "nested")
		w := fs.NewResultWriter(baseDir)

		path, err := w.WriteReport(context.Background(), testReport())

		require.NoError(t, err)
		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewResultWriter(baseDir)

		_, err := w.WriteReport(context.Background(), testReport())
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(baseDir, "example.com.json.tmp"))
		assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")
	})

	t.Run("replaces an existing report", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		w := fs.NewResultWriter(baseDir)

		first := testReport()
		_, err := w.WriteReport(context.Background(), first)
		require.NoError(t, err)

		second := testReport()
		second.PageCount = 7
		path, err := w.WriteReport(context.Background(), second)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got domsift.CrawlReport
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, 7, got.PageCount)
	})

	t.Run("rejects nil report", func(t *testing.T) {
		t.Parallel()

		w := fs.NewResultWriter(t.TempDir())

		_, err := w.WriteReport(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	})

	t.Run("rejects report without a domain", func(t *testing.T) {
		t.Parallel()

		w := fs.NewResultWriter(t.TempDir())

		report := testReport()
		report.Domain = ""
		_, err := w.WriteReport(context.Background(), report)

		require.Error(t, err)
		assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	})
}
