package mock

import (
	"context"

	"github.com/domsift/domsift"
)

// Compile-time interface verification.
var (
	_ domsift.URLSelector = (*URLSelector)(nil)
	_ domsift.Analyzer    = (*Analyzer)(nil)
)

// URLSelector is a mock implementation of domsift.URLSelector.
type URLSelector struct {
	SelectURLsFn func(ctx context.Context, objective string, candidates []string, domain string, max int) ([]string, error)
}

func (s *URLSelector) SelectURLs(ctx context.Context, objective string, candidates []string, domain string, max int) ([]string, error) {
	return s.SelectURLsFn(ctx, objective, candidates, domain, max)
}

// Analyzer is a mock implementation of domsift.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, objective string, pageURL string, content string) (string, error)
}

func (a *Analyzer) Analyze(ctx context.Context, objective string, pageURL string, content string) (string, error) {
	return a.AnalyzeFn(ctx, objective, pageURL, content)
}
