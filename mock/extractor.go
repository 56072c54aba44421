package mock

import "github.com/domsift/domsift"

var _ domsift.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of domsift.Extractor.
type Extractor struct {
	ExtractFn func(html string, pageURL string) (*domsift.ExtractResult, error)
}

func (e *Extractor) Extract(html string, pageURL string) (*domsift.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
