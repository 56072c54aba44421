package domsift

import "strings"

// ExtractResult holds the readable content pulled out of a page.
type ExtractResult struct {
	// Title of the page or article.
	Title string

	// ContentHTML is the main content with boilerplate removed.
	ContentHTML string
}

// Extractor extracts the main content from raw HTML, discarding
// navigation, ads and other boilerplate.
type Extractor interface {
	// Extract pulls the readable content out of html. The pageURL is
	// used to resolve relative references and as metadata context.
	Extract(html string, pageURL string) (*ExtractResult, error)
}

// ExtractorChain tries each extractor in order and returns the first
// result with non-empty content. It satisfies Extractor itself.
type ExtractorChain struct {
	extractors []Extractor
}

// NewExtractorChain returns a chain over the given extractors.
func NewExtractorChain(extractors ...Extractor) *ExtractorChain {
	return &ExtractorChain{extractors: extractors}
}

// Extract runs the chain. If every extractor fails or returns empty
// content, the last error is returned; if all succeed with empty
// content, an EINVALID error is returned.
func (c *ExtractorChain) Extract(html string, pageURL string) (*ExtractResult, error) {
	var lastErr error
	for _, e := range c.extractors {
		result, err := e.Extract(html, pageURL)
		if err != nil {
			lastErr = err
			continue
		}
		if result != nil && strings.TrimSpace(result.ContentHTML) != "" {
			return result, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, Errorf(EINVALID, "no extractor produced content for %s", pageURL)
}

var _ Extractor = (*ExtractorChain)(nil)
