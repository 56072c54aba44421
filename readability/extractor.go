package readability

import (
	"net/url"
	"strings"

	"github.com/domsift/domsift"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements domsift.Extractor at compile time.
var _ domsift.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Relative
// links in the content are resolved against pageURL.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*domsift.ExtractResult, error) {
	if rawHTML == "" {
		return nil, domsift.Errorf(domsift.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, err
	}

	return &domsift.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
