package domsift

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and returns
	// the rendered HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// BoundsExtractor reports post-layout element geometry for a rendered page.
// Implementations run script inside a real browser; the returned bounds obey
// the ElementBounds visibility contract.
type BoundsExtractor interface {
	// ExtractBounds navigates to the URL, waits for layout, and returns the
	// bounds of every visible element.
	ExtractBounds(ctx context.Context, url string) ([]ElementBounds, error)
}

// TreeBuilder parses an HTML document into a filtered semantic tree.
type TreeBuilder interface {
	// BuildTree parses html and returns the root node, or nil when the
	// document contains no usable root element. Malformed markup never
	// fails the build; unparseable fragments are skipped.
	BuildTree(html string) (*Node, error)
}
