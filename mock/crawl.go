package mock

import (
	"context"

	"github.com/domsift/domsift"
)

// Compile-time interface verification.
var (
	_ domsift.CrawlService     = (*CrawlService)(nil)
	_ domsift.SignatureService = (*SignatureService)(nil)
)

// CrawlService is a mock implementation of domsift.CrawlService.
type CrawlService struct {
	CreateCrawlFn   func(ctx context.Context, crawl *domsift.Crawl) error
	FindCrawlByIDFn func(ctx context.Context, id string) (*domsift.Crawl, error)
	FindCrawlsFn    func(ctx context.Context, filter domsift.CrawlFilter) ([]*domsift.Crawl, error)
	UpdateCrawlFn   func(ctx context.Context, id string, upd domsift.CrawlUpdate) (*domsift.Crawl, error)
	DeleteCrawlFn   func(ctx context.Context, id string) error
}

func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *domsift.Crawl) error {
	return s.CreateCrawlFn(ctx, crawl)
}

func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*domsift.Crawl, error) {
	return s.FindCrawlByIDFn(ctx, id)
}

func (s *CrawlService) FindCrawls(ctx context.Context, filter domsift.CrawlFilter) ([]*domsift.Crawl, error) {
	return s.FindCrawlsFn(ctx, filter)
}

func (s *CrawlService) UpdateCrawl(ctx context.Context, id string, upd domsift.CrawlUpdate) (*domsift.Crawl, error) {
	return s.UpdateCrawlFn(ctx, id, upd)
}

func (s *CrawlService) DeleteCrawl(ctx context.Context, id string) error {
	return s.DeleteCrawlFn(ctx, id)
}

// SignatureService is a mock implementation of domsift.SignatureService.
type SignatureService struct {
	AddSignaturesFn  func(ctx context.Context, domain string, signatures []string) error
	FindSignaturesFn func(ctx context.Context, domain string) ([]string, error)
}

func (s *SignatureService) AddSignatures(ctx context.Context, domain string, signatures []string) error {
	return s.AddSignaturesFn(ctx, domain, signatures)
}

func (s *SignatureService) FindSignatures(ctx context.Context, domain string) ([]string, error) {
	return s.FindSignaturesFn(ctx, domain)
}
