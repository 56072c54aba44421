package main

import (
	"fmt"
	"strings"

	"github.com/domsift/domsift"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	cr, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		if domsift.ErrorCode(err) == domsift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'domsift list' to see available crawls.\n", c.CrawlID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, domsift.PageFilter{CrawlID: &cr.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages stored for crawl %s.\n", cr.ID)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages for %s (%d total):\n\n", cr.Domain, len(pages))
	for i, page := range pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		fmt.Fprintf(deps.Stdout, "  %d. [%s] %s\n     %s\n", i+1, page.Status, title, page.URL)
		if page.Error != "" {
			fmt.Fprintf(deps.Stdout, "     error: %s\n", page.Error)
		}
		if c.Full && page.Summary != "" {
			for _, line := range strings.Split(page.Summary, "\n") {
				fmt.Fprintf(deps.Stdout, "     %s\n", line)
			}
		}
	}

	return nil
}
