package mock

import (
	"context"

	"github.com/domsift/domsift"
)

// Compile-time interface verification.
var (
	_ domsift.Fetcher         = (*Fetcher)(nil)
	_ domsift.BoundsExtractor = (*BoundsExtractor)(nil)
	_ domsift.TreeBuilder     = (*TreeBuilder)(nil)
)

// Fetcher is a mock implementation of domsift.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// BoundsExtractor is a mock implementation of domsift.BoundsExtractor.
type BoundsExtractor struct {
	ExtractBoundsFn func(ctx context.Context, url string) ([]domsift.ElementBounds, error)
}

func (e *BoundsExtractor) ExtractBounds(ctx context.Context, url string) ([]domsift.ElementBounds, error) {
	return e.ExtractBoundsFn(ctx, url)
}

// TreeBuilder is a mock implementation of domsift.TreeBuilder.
type TreeBuilder struct {
	BuildTreeFn func(html string) (*domsift.Node, error)
}

func (b *TreeBuilder) BuildTree(html string) (*domsift.Node, error) {
	return b.BuildTreeFn(html)
}
