package domsift

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Crawl represents one LLM-guided crawl of a domain: the root URL, the
// natural-language objective steering URL selection and analysis, and the
// page budget.
type Crawl struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	RootURL   string    `json:"rootUrl"`
	Objective string    `json:"objective"`
	MaxPages  int       `json:"maxPages"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the crawl contains invalid fields.
func (c *Crawl) Validate() error {
	if c.RootURL == "" {
		return Errorf(EINVALID, "crawl root URL required")
	}
	if c.Objective == "" {
		return Errorf(EINVALID, "crawl objective required")
	}
	if c.MaxPages < 1 {
		return Errorf(EINVALID, "crawl page budget must be positive")
	}
	return nil
}

// CrawlService represents a service for managing crawls.
type CrawlService interface {
	// CreateCrawl creates a new crawl.
	CreateCrawl(ctx context.Context, crawl *Crawl) error

	// FindCrawlByID retrieves a crawl by ID.
	// Returns ENOTFOUND if the crawl does not exist.
	FindCrawlByID(ctx context.Context, id string) (*Crawl, error)

	// FindCrawls retrieves crawls matching the filter.
	FindCrawls(ctx context.Context, filter CrawlFilter) ([]*Crawl, error)

	// UpdateCrawl updates an existing crawl.
	// Returns ENOTFOUND if the crawl does not exist.
	UpdateCrawl(ctx context.Context, id string, upd CrawlUpdate) (*Crawl, error)

	// DeleteCrawl permanently removes a crawl and all associated pages.
	// Returns ENOTFOUND if the crawl does not exist.
	DeleteCrawl(ctx context.Context, id string) error
}

// CrawlFilter represents a filter for FindCrawls.
type CrawlFilter struct {
	ID     *string `json:"id"`
	Domain *string `json:"domain"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// CrawlUpdate represents fields that can be updated on a crawl.
type CrawlUpdate struct {
	Objective *string `json:"objective"`
	MaxPages  *int    `json:"maxPages"`
}

// SignatureService persists the per-domain duplicate signature set so later
// crawls of the same domain resume from the accumulated boilerplate
// knowledge.
type SignatureService interface {
	// AddSignatures records signatures as known duplicates for a domain.
	// Already-recorded signatures are ignored.
	AddSignatures(ctx context.Context, domain string, signatures []string) error

	// FindSignatures returns all duplicate signatures recorded for a domain.
	FindSignatures(ctx context.Context, domain string) ([]string, error)
}

// DomainOf extracts the hostname of a URL, lowercased. Returns an error for
// unparseable URLs or URLs without a host.
func DomainOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return host, nil
}
