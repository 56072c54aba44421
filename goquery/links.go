package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/domsift/domsift"
)

var _ domsift.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor discovers same-host links in rendered HTML using universal
// CSS selectors. Links found in TOC, navigation, content and footer regions
// carry the matching priority; a final fallback pass over every anchor
// catches sites whose markup has no semantic regions at all.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses html and returns discovered links with priority.
// Links are deduplicated by URL, keeping the highest priority version.
// External links (different host than baseURL) are filtered out.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]domsift.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, domsift.Errorf(domsift.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domsift.Errorf(domsift.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1) updates
	seen := make(map[string]int)
	var links []domsift.DiscoveredLink

	extract := func(selector string, priority domsift.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			// Skip non-HTTP links (javascript:, mailto:, etc.)
			if isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" {
				return
			}

			// Filter external links (exact host match, subdomains are filtered)
			if !isSameHost(base, resolved) {
				return
			}

			link := domsift.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			}

			if idx, ok := seen[resolved]; ok {
				// Update if this has higher priority
				if priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				// First occurrence - add to slice and track index
				seen[resolved] = len(links)
				links = append(links, link)
			}
		})
	}

	extract(".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", domsift.PriorityTOC, "toc")
	extract("nav a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href], .navbar a[href]", domsift.PriorityNavigation, "nav")
	extract("main a[href], article a[href], .content a[href], #content a[href]", domsift.PriorityContent, "content")
	extract("footer a[href], .footer a[href]", domsift.PriorityFooter, "footer")

	// Fallback pass: any anchor on the page. Links already found via the
	// semantic selectors keep their higher priority due to the deduplication
	// logic, so this only adds what the regions missed.
	extract("a[href]", domsift.PriorityFallback, "fallback")

	return links, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// is self-referential (same as base URL after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	// Filter self-referential links (e.g., anchor-only links pointing to same page)
	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
