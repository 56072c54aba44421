package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/domsift/domsift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ domsift.CrawlService = (*CrawlService)(nil)

// CrawlService implements domsift.CrawlService using SQLite.
type CrawlService struct {
	db *DB
}

// NewCrawlService creates a new CrawlService.
func NewCrawlService(db *DB) *CrawlService {
	return &CrawlService{db: db}
}

// CreateCrawl creates a new crawl. The crawl's domain is derived from its
// root URL.
func (s *CrawlService) CreateCrawl(ctx context.Context, crawl *domsift.Crawl) error {
	if err := crawl.Validate(); err != nil {
		return err
	}

	domain, err := domsift.DomainOf(crawl.RootURL)
	if err != nil {
		return err
	}
	crawl.Domain = domain

	crawl.ID = uuid.New().String()
	now := time.Now().UTC()
	crawl.CreatedAt = now
	crawl.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crawls (id, domain, root_url, objective, max_pages, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, crawl.ID, crawl.Domain, crawl.RootURL, crawl.Objective, crawl.MaxPages,
		crawl.CreatedAt.Format(time.RFC3339), crawl.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindCrawlByID retrieves a crawl by ID.
func (s *CrawlService) FindCrawlByID(ctx context.Context, id string) (*domsift.Crawl, error) {
	var crawl domsift.Crawl
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, domain, root_url, objective, max_pages, created_at, updated_at
		FROM crawls
		WHERE id = ?
	`, id).Scan(&crawl.ID, &crawl.Domain, &crawl.RootURL, &crawl.Objective, &crawl.MaxPages,
		&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, domsift.Errorf(domsift.ENOTFOUND, "crawl not found")
	}
	if err != nil {
		return nil, err
	}

	if crawl.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if crawl.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &crawl, nil
}

// FindCrawls retrieves crawls matching the filter.
func (s *CrawlService) FindCrawls(ctx context.Context, filter domsift.CrawlFilter) ([]*domsift.Crawl, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, domain, root_url, objective, max_pages, created_at, updated_at FROM crawls WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var crawls []*domsift.Crawl
	for rows.Next() {
		var crawl domsift.Crawl
		var createdAt, updatedAt string

		if err := rows.Scan(&crawl.ID, &crawl.Domain, &crawl.RootURL, &crawl.Objective, &crawl.MaxPages,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if crawl.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if crawl.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		crawls = append(crawls, &crawl)
	}

	return crawls, rows.Err()
}

// UpdateCrawl updates an existing crawl.
func (s *CrawlService) UpdateCrawl(ctx context.Context, id string, upd domsift.CrawlUpdate) (*domsift.Crawl, error) {
	// First check if crawl exists
	crawl, err := s.FindCrawlByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Objective != nil {
		crawl.Objective = *upd.Objective
	}
	if upd.MaxPages != nil {
		crawl.MaxPages = *upd.MaxPages
	}

	// Validate before persisting
	if err := crawl.Validate(); err != nil {
		return nil, err
	}

	crawl.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE crawls
		SET objective = ?, max_pages = ?, updated_at = ?
		WHERE id = ?
	`, crawl.Objective, crawl.MaxPages, crawl.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return crawl, nil
}

// DeleteCrawl permanently removes a crawl. Associated pages are removed by
// the foreign key cascade.
func (s *CrawlService) DeleteCrawl(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM crawls WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domsift.Errorf(domsift.ENOTFOUND, "crawl not found")
	}

	return nil
}
