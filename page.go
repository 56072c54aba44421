package domsift

import (
	"context"
	"time"
)

// FetchStatus tracks a page through the crawl pipeline.
type FetchStatus string

// Page fetch statuses.
const (
	StatusPending    FetchStatus = "pending"
	StatusInProgress FetchStatus = "in_progress"
	StatusSuccess    FetchStatus = "success"
	StatusFailed     FetchStatus = "failed"
)

// Page represents one URL processed during a crawl: its fetch outcome, the
// analyzed semantic tree, and the LLM summary of its unique content.
type Page struct {
	ID          string      `json:"id"`
	CrawlID     string      `json:"crawlId"`
	URL         string      `json:"url"`
	Domain      string      `json:"domain"`
	Title       string      `json:"title"`
	Status      FetchStatus `json:"status"`
	Error       string      `json:"error,omitempty"`
	ContentHash string      `json:"contentHash"`
	Summary     string      `json:"summary,omitempty"`
	Tree        *Node       `json:"tree,omitempty"`
	FetchedAt   time.Time   `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.CrawlID == "" {
		return Errorf(EINVALID, "page crawl ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Domain == "" {
		return Errorf(EINVALID, "page domain required")
	}
	return nil
}

// PageService represents a service for managing pages.
type PageService interface {
	// CreatePage creates a new page.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*Page, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// UpdatePage updates an existing page.
	// Returns ENOTFOUND if the page does not exist.
	UpdatePage(ctx context.Context, id string, upd PageUpdate) (*Page, error)

	// UpdatePageTree replaces the stored tree for a page. A nil tree
	// clears it, which happens when every subtree of the page was
	// flagged as cross-page boilerplate.
	// Returns ENOTFOUND if the page does not exist.
	UpdatePageTree(ctx context.Context, id string, tree *Node) error

	// DeletePage permanently removes a page.
	// Returns ENOTFOUND if the page does not exist.
	DeletePage(ctx context.Context, id string) error

	// DeletePagesByCrawl removes all pages for a crawl.
	DeletePagesByCrawl(ctx context.Context, crawlID string) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID      *string      `json:"id"`
	CrawlID *string      `json:"crawlId"`
	Domain  *string      `json:"domain"`
	URL     *string      `json:"url"`
	Status  *FetchStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageUpdate represents fields that can be updated on a page. Tree
// replacement has its own operation, UpdatePageTree, because a tree can
// legitimately be cleared.
type PageUpdate struct {
	Title       *string      `json:"title"`
	Status      *FetchStatus `json:"status"`
	Error       *string      `json:"error"`
	ContentHash *string      `json:"contentHash"`
	Summary     *string      `json:"summary"`
}
