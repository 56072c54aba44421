package mock

import "github.com/domsift/domsift"

var _ domsift.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of domsift.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]domsift.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]domsift.DiscoveredLink, error) {
	return e.ExtractLinksFn(html, baseURL)
}
