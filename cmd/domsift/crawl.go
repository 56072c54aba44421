package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cr := &domsift.Crawl{
		RootURL:   c.URL,
		Objective: c.Objective,
		MaxPages:  c.MaxPages,
	}
	if err := deps.Crawls.CreateCrawl(deps.Ctx, cr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (%s)\n", cr.Domain, cr.ID)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSelected:
			fmt.Fprintf(deps.Stdout, "  Selected %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n",
				event.Completed, event.Total, crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (unchanged)\n",
				event.Completed, event.Total, crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, cr, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Analyzed %d pages (%s, %s)\n",
		result.Analyzed, crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens))
	if result.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "  Skipped %d unchanged pages\n", result.Skipped)
	}
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed %d pages\n", result.Failed)
	}
	if result.Duplicates > 0 {
		fmt.Fprintf(deps.Stdout, "  Known boilerplate signatures: %d\n", result.Duplicates)
	}
	if result.ReportPath != "" {
		fmt.Fprintf(deps.Stdout, "  Report written to %s\n", result.ReportPath)
	}

	return nil
}

// excerptMaxLen bounds the summary produced without an LLM.
const excerptMaxLen = 500

// ExcerptAnalyzer stands in for the LLM analyzer when --no-llm is set.
// The "summary" is the leading excerpt of the page content.
type ExcerptAnalyzer struct{}

func (a *ExcerptAnalyzer) Analyze(ctx context.Context, objective, pageURL, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domsift.Errorf(domsift.EINVALID, "content required")
	}
	if len(content) <= excerptMaxLen {
		return content, nil
	}
	cut := excerptMaxLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "...", nil
}
