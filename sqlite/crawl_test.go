package sqlite_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/domsift/domsift"
	"github.com/domsift/domsift/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlService_CreateCrawl(t *testing.T) {
	t.Parallel()

	t.Run("creates crawl with generated ID and derived domain", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := &domsift.Crawl{
			RootURL:   "https://Example.COM/docs",
			Objective: "find installation instructions",
			MaxPages:  5,
		}

		err := svc.CreateCrawl(ctx, crawl)
		require.NoError(t, err)

		assert.NotEmpty(t, crawl.ID, "ID should be generated")
		assert.Equal(t, "example.com", crawl.Domain, "domain is derived from the root URL")
		assert.False(t, crawl.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, crawl.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid crawl", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := &domsift.Crawl{} // missing required fields

		err := svc.CreateCrawl(ctx, crawl)
		require.Error(t, err)
		assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	})

	t.Run("returns error for root URL without host", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := &domsift.Crawl{
			RootURL:   "/relative/path",
			Objective: "find anything",
			MaxPages:  5,
		}

		err := svc.CreateCrawl(ctx, crawl)
		require.Error(t, err)
		assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	})
}

func TestCrawlService_FindCrawlByID(t *testing.T) {
	t.Parallel()

	t.Run("returns crawl when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := mustCreateCrawl(t, db)

		found, err := svc.FindCrawlByID(ctx, crawl.ID)
		require.NoError(t, err)
		assert.Equal(t, crawl.ID, found.ID)
		assert.Equal(t, crawl.Domain, found.Domain)
		assert.Equal(t, crawl.RootURL, found.RootURL)
		assert.Equal(t, crawl.Objective, found.Objective)
		assert.Equal(t, crawl.MaxPages, found.MaxPages)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		_, err := svc.FindCrawlByID(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))
	})
}

func TestCrawlService_FindCrawls(t *testing.T) {
	t.Parallel()

	t.Run("returns all crawls with empty filter", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			crawl := &domsift.Crawl{
				RootURL:   "https://site" + strconv.Itoa(i) + ".example/docs",
				Objective: "find api documentation",
				MaxPages:  10,
			}
			require.NoError(t, svc.CreateCrawl(ctx, crawl))
		}

		crawls, err := svc.FindCrawls(ctx, domsift.CrawlFilter{})
		require.NoError(t, err)
		assert.Len(t, crawls, 3)
	})

	t.Run("filters by domain", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		first := &domsift.Crawl{RootURL: "https://alpha.example/", Objective: "find pricing", MaxPages: 5}
		second := &domsift.Crawl{RootURL: "https://beta.example/", Objective: "find pricing", MaxPages: 5}
		require.NoError(t, svc.CreateCrawl(ctx, first))
		require.NoError(t, svc.CreateCrawl(ctx, second))

		domain := "alpha.example"
		crawls, err := svc.FindCrawls(ctx, domsift.CrawlFilter{Domain: &domain})
		require.NoError(t, err)
		require.Len(t, crawls, 1)
		assert.Equal(t, first.ID, crawls[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			crawl := &domsift.Crawl{
				RootURL:   "https://site" + strconv.Itoa(i) + ".example/",
				Objective: "find api documentation",
				MaxPages:  10,
			}
			require.NoError(t, svc.CreateCrawl(ctx, crawl))
		}

		crawls, err := svc.FindCrawls(ctx, domsift.CrawlFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, crawls, 2)
	})
}

func TestCrawlService_UpdateCrawl(t *testing.T) {
	t.Parallel()

	t.Run("updates objective and max pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := mustCreateCrawl(t, db)

		objective := "find contact details"
		maxPages := 25
		updated, err := svc.UpdateCrawl(ctx, crawl.ID, domsift.CrawlUpdate{
			Objective: &objective,
			MaxPages:  &maxPages,
		})
		require.NoError(t, err)
		assert.Equal(t, objective, updated.Objective)
		assert.Equal(t, maxPages, updated.MaxPages)

		found, err := svc.FindCrawlByID(ctx, crawl.ID)
		require.NoError(t, err)
		assert.Equal(t, objective, found.Objective)
		assert.Equal(t, maxPages, found.MaxPages)
	})

	t.Run("rejects invalid updates", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		crawl := mustCreateCrawl(t, db)

		maxPages := 0
		_, err := svc.UpdateCrawl(ctx, crawl.ID, domsift.CrawlUpdate{MaxPages: &maxPages})
		require.Error(t, err)
		assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when crawl does not exist", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		objective := "anything"
		_, err := svc.UpdateCrawl(ctx, "nonexistent-id", domsift.CrawlUpdate{Objective: &objective})
		require.Error(t, err)
		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))
	})
}

func TestCrawlService_DeleteCrawl(t *testing.T) {
	t.Parallel()

	t.Run("removes crawl and cascades to pages", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		crawlSvc := sqlite.NewCrawlService(db)
		pageSvc := sqlite.NewPageService(db)
		ctx := context.Background()

		crawl := mustCreateCrawl(t, db)
		page := &domsift.Page{
			CrawlID: crawl.ID,
			URL:     "https://example.com/docs/intro",
			Domain:  crawl.Domain,
		}
		require.NoError(t, pageSvc.CreatePage(ctx, page))

		require.NoError(t, crawlSvc.DeleteCrawl(ctx, crawl.ID))

		_, err := crawlSvc.FindCrawlByID(ctx, crawl.ID)
		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))

		_, err = pageSvc.FindPageByID(ctx, page.ID)
		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err), "pages are removed with their crawl")
	})

	t.Run("returns ENOTFOUND when crawl does not exist", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCrawlService(db)
		ctx := context.Background()

		err := svc.DeleteCrawl(ctx, "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))
	})
}
