package domsift

// LinkPriority indicates where in the page a link was found. Higher
// values are crawled first.
type LinkPriority int

const (
	PriorityIgnore     LinkPriority = 0
	PriorityFallback   LinkPriority = 10
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink is a link found on a crawled page, annotated with its
// source region so the frontier can order it.
type DiscoveredLink struct {
	URL      string
	Text     string
	Priority LinkPriority
	Source   string
}

// LinkExtractor extracts same-domain links from rendered HTML.
type LinkExtractor interface {
	// ExtractLinks returns all unique links discovered in html, resolved
	// against baseURL. Links outside baseURL's domain, fragments, and
	// non-http schemes are dropped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}
