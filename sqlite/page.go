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
var _ domsift.PageService = (*PageService)(nil)

// PageService implements domsift.PageService using SQLite. Page trees are
// stored as JSON.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage creates a new page.
func (s *PageService) CreatePage(ctx context.Context, page *domsift.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.FetchedAt = time.Now().UTC()
	if page.Status == "" {
		page.Status = domsift.StatusPending
	}

	tree, err := marshalTree(page.Tree)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, crawl_id, url, domain, title, status, error, content_hash, summary, tree, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.CrawlID, page.URL, page.Domain, page.Title, string(page.Status),
		page.Error, page.ContentHash, page.Summary, tree, page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*domsift.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, crawl_id, url, domain, title, status, error, content_hash, summary, tree, fetched_at
		FROM pages
		WHERE id = ?
	`, id)

	page, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, domsift.Errorf(domsift.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	return page, nil
}

// FindPages retrieves pages matching the filter, most recently fetched first.
func (s *PageService) FindPages(ctx context.Context, filter domsift.PageFilter) ([]*domsift.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, crawl_id, url, domain, title, status, error, content_hash, summary, tree, fetched_at FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.CrawlID != nil {
		query.WriteString(" AND crawl_id = ?")
		args = append(args, *filter.CrawlID)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY fetched_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*domsift.Page
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// UpdatePage updates an existing page.
func (s *PageService) UpdatePage(ctx context.Context, id string, upd domsift.PageUpdate) (*domsift.Page, error) {
	// First check if page exists
	page, err := s.FindPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.Title != nil {
		page.Title = *upd.Title
	}
	if upd.Status != nil {
		page.Status = *upd.Status
	}
	if upd.Error != nil {
		page.Error = *upd.Error
	}
	if upd.ContentHash != nil {
		page.ContentHash = *upd.ContentHash
	}
	if upd.Summary != nil {
		page.Summary = *upd.Summary
	}

	// Validate before persisting
	if err := page.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE pages
		SET title = ?, status = ?, error = ?, content_hash = ?, summary = ?
		WHERE id = ?
	`, page.Title, string(page.Status), page.Error, page.ContentHash, page.Summary, id)

	if err != nil {
		return nil, err
	}

	return page, nil
}

// UpdatePageTree replaces the stored tree for a page. A nil tree clears it.
func (s *PageService) UpdatePageTree(ctx context.Context, id string, tree *domsift.Node) error {
	encoded, err := marshalTree(tree)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "UPDATE pages SET tree = ? WHERE id = ?", encoded, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domsift.Errorf(domsift.ENOTFOUND, "page not found")
	}

	return nil
}

// DeletePage permanently removes a page.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domsift.Errorf(domsift.ENOTFOUND, "page not found")
	}

	return nil
}

// DeletePagesByCrawl removes all pages for a crawl.
func (s *PageService) DeletePagesByCrawl(ctx context.Context, crawlID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE crawl_id = ?", crawlID)
	return err
}

// scanPage reads one page row. The scan argument abstracts over
// sql.Row.Scan and sql.Rows.Scan.
func scanPage(scan func(dest ...any) error) (*domsift.Page, error) {
	var page domsift.Page
	var status, fetchedAt string
	var tree sql.NullString

	if err := scan(&page.ID, &page.CrawlID, &page.URL, &page.Domain, &page.Title, &status,
		&page.Error, &page.ContentHash, &page.Summary, &tree, &fetchedAt); err != nil {
		return nil, err
	}

	page.Status = domsift.FetchStatus(status)

	var err error
	if page.Tree, err = unmarshalTree(tree); err != nil {
		return nil, err
	}
	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &page, nil
}
