package main

import (
	"fmt"

	"github.com/domsift/domsift"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return domsift.Errorf(domsift.EINVALID, "use --force to confirm deletion")
	}

	cr, err := deps.Crawls.FindCrawlByID(deps.Ctx, c.CrawlID)
	if err != nil {
		if domsift.ErrorCode(err) == domsift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: crawl %q not found. Use 'domsift list' to see available crawls.\n", c.CrawlID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	if err := deps.Crawls.DeleteCrawl(deps.Ctx, cr.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", domsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted crawl %s (%s) and its pages\n", cr.ID, cr.Domain)
	return nil
}
