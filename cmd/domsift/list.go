package main

import (
	"fmt"

	"github.com/domsift/domsift"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	crawls, err := deps.Crawls.FindCrawls(deps.Ctx, domsift.CrawlFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	if len(crawls) == 0 {
		fmt.Fprintln(deps.Stdout, "No crawls found. Use 'domsift crawl' to start one.")
		return nil
	}

	for _, cr := range crawls {
		fmt.Fprintf(deps.Stdout, "%s  %s  %q  %d pages  %s\n",
			cr.ID, cr.Domain, cr.Objective, cr.MaxPages, cr.CreatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
