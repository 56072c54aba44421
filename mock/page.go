package mock

import (
	"context"

	"github.com/domsift/domsift"
)

var _ domsift.PageService = (*PageService)(nil)

// PageService is a mock implementation of domsift.PageService.
type PageService struct {
	CreatePageFn         func(ctx context.Context, page *domsift.Page) error
	FindPageByIDFn       func(ctx context.Context, id string) (*domsift.Page, error)
	FindPagesFn          func(ctx context.Context, filter domsift.PageFilter) ([]*domsift.Page, error)
	UpdatePageFn         func(ctx context.Context, id string, upd domsift.PageUpdate) (*domsift.Page, error)
	UpdatePageTreeFn     func(ctx context.Context, id string, tree *domsift.Node) error
	DeletePageFn         func(ctx context.Context, id string) error
	DeletePagesByCrawlFn func(ctx context.Context, crawlID string) error
}

func (s *PageService) CreatePage(ctx context.Context, page *domsift.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*domsift.Page, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter domsift.PageFilter) ([]*domsift.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) UpdatePage(ctx context.Context, id string, upd domsift.PageUpdate) (*domsift.Page, error) {
	return s.UpdatePageFn(ctx, id, upd)
}

func (s *PageService) UpdatePageTree(ctx context.Context, id string, tree *domsift.Node) error {
	return s.UpdatePageTreeFn(ctx, id, tree)
}

func (s *PageService) DeletePage(ctx context.Context, id string) error {
	return s.DeletePageFn(ctx, id)
}

func (s *PageService) DeletePagesByCrawl(ctx context.Context, crawlID string) error {
	return s.DeletePagesByCrawlFn(ctx, crawlID)
}
