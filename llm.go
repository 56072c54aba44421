package domsift

import "context"

// URLSelector picks which URLs are worth crawling for an objective.
type URLSelector interface {
	// SelectURLs returns up to max URLs from the candidates, ordered by
	// relevance to the objective. The domain is provided as context.
	SelectURLs(ctx context.Context, objective string, candidates []string, domain string, max int) ([]string, error)
}

// Analyzer summarizes page content against a crawl objective.
type Analyzer interface {
	// Analyze returns an objective-focused summary of the page content.
	// Content is expected to be Markdown.
	Analyze(ctx context.Context, objective string, pageURL string, content string) (string, error)
}
