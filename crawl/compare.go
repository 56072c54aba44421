package crawl

import (
	"github.com/domsift/domsift"
)

// ContentDiffers reports whether browser-rendered HTML carries enough
// extra extractable content over the static HTTP response that the page
// needs JavaScript rendering. Extraction failures on either variant are
// treated as a difference so the crawl falls back to the browser.
func ContentDiffers(httpHTML, rodHTML, pageURL string, extractor domsift.Extractor) bool {
	httpResult, httpErr := extractor.Extract(httpHTML, pageURL)
	rodResult, rodErr := extractor.Extract(rodHTML, pageURL)
	if httpErr != nil || rodErr != nil {
		return true
	}
	httpLen := len(httpResult.ContentHTML)
	rodLen := len(rodResult.ContentHTML)
	if httpLen == 0 {
		return rodLen > 0
	}
	return rodLen > httpLen*3/2
}
