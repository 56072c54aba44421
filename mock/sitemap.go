package mock

import (
	"context"

	"github.com/domsift/domsift"
)

var _ domsift.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of domsift.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *domsift.URLFilter) ([]domsift.SitemapURL, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *domsift.URLFilter) ([]domsift.SitemapURL, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
