package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
	"github.com/termsift/termsift/sqlite"
)

func TestPageService_CreatePage(t *testing.T) {
	t.Parallel()

	t.Run("creates page with derived hashes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		website := createTestWebsite(t, db)
		session := createTestSession(t, db, website.ID)
		svc := sqlite.NewPageService(db)

		description := "a page"
		page := &termsift.PageRecord{
			SessionID:       session.ID,
			WebsiteID:       website.ID,
			URL:             "https://example.com/docs/a",
			Title:           "Page A",
			MetaDescription: &description,
			PlainText:       "some words here",
			MainText:        "some words",
			RawHTML:         "<html><body>some words here</body></html>",
			WordCount:       3,
			LinkCount:       2,
			EmphasisStats: map[termsift.EmphasisType]int{
				termsift.EmphasisBold:   1,
				termsift.EmphasisHeader: 2,
			},
		}
		require.NoError(t, svc.CreatePage(context.Background(), page))

		assert.NotEmpty(t, page.ID)
		assert.NotEmpty(t, page.URLHash)
		assert.NotEmpty(t, page.ContentHash)
		assert.False(t, page.FetchedAt.IsZero())
	})

	t.Run("round-trips nullable and JSON fields", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		website := createTestWebsite(t, db)
		session := createTestSession(t, db, website.ID)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		stats := map[termsift.EmphasisType]int{
			termsift.EmphasisLinkText: 4,
			termsift.EmphasisEm:       1,
		}
		page := &termsift.PageRecord{
			SessionID:     session.ID,
			WebsiteID:     website.ID,
			URL:           "https://example.com/docs/b",
			PlainText:     "body",
			EmphasisStats: stats,
		}
		require.NoError(t, svc.CreatePage(ctx, page))

		found, err := svc.FindPageByID(ctx, page.ID)
		require.NoError(t, err)
		assert.Nil(t, found.MetaDescription, "absent description stays NULL")
		assert.Equal(t, stats, found.EmphasisStats)
		assert.Equal(t, page.URLHash, found.URLHash)
	})

	t.Run("returns ECONFLICT for duplicate URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		website := createTestWebsite(t, db)
		session := createTestSession(t, db, website.ID)
		svc := sqlite.NewPageService(db)
		ctx := context.Background()

		page := &termsift.PageRecord{
			SessionID: session.ID,
			WebsiteID: website.ID,
			URL:       "https://example.com/docs/dup",
		}
		require.NoError(t, svc.CreatePage(ctx, page))

		duplicate := &termsift.PageRecord{
			SessionID: session.ID,
			WebsiteID: website.ID,
			URL:       "https://example.com/docs/dup",
		}
		err := svc.CreatePage(ctx, duplicate)
		assert.Equal(t, termsift.ECONFLICT, termsift.ErrorCode(err))
	})

	t.Run("returns error for invalid page", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPageService(db)

		err := svc.CreatePage(context.Background(), &termsift.PageRecord{})
		assert.Equal(t, termsift.EINVALID, termsift.ErrorCode(err))
	})
}

func TestPageService_PageExists(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	website := createTestWebsite(t, db)
	session := createTestSession(t, db, website.ID)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	page := &termsift.PageRecord{
		SessionID: session.ID,
		WebsiteID: website.ID,
		URL:       "https://example.com/docs/exists",
	}
	require.NoError(t, svc.CreatePage(ctx, page))

	exists, err := svc.PageExists(ctx, "https://example.com/docs/exists")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.PageExists(ctx, "https://example.com/docs/missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPageService_FindPages(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	website := createTestWebsite(t, db)
	session := createTestSession(t, db, website.ID)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	for i, words := range []int{5, 50, 20} {
		page := &termsift.PageRecord{
			SessionID: session.ID,
			WebsiteID: website.ID,
			URL:       fmt.Sprintf("https://example.com/docs/%d", i),
			WordCount: words,
		}
		require.NoError(t, svc.CreatePage(ctx, page))
	}

	t.Run("filters by session", func(t *testing.T) {
		pages, err := svc.FindPages(ctx, termsift.PageFilter{SessionID: &session.ID})
		require.NoError(t, err)
		assert.Len(t, pages, 3)
	})

	t.Run("filters by URL", func(t *testing.T) {
		url := "https://example.com/docs/1"
		pages, err := svc.FindPages(ctx, termsift.PageFilter{URL: &url})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, url, pages[0].URL)
	})

	t.Run("sorts by word count", func(t *testing.T) {
		pages, err := svc.FindPages(ctx, termsift.PageFilter{
			SessionID: &session.ID,
			SortBy:    termsift.SortByWordCount,
		})
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Equal(t, 50, pages[0].WordCount)
		assert.Equal(t, 20, pages[1].WordCount)
		assert.Equal(t, 5, pages[2].WordCount)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		pages, err := svc.FindPages(ctx, termsift.PageFilter{
			SessionID: &session.ID,
			SortBy:    termsift.SortByWordCount,
			Limit:     1,
			Offset:    1,
		})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, 20, pages[0].WordCount)
	})
}

func TestPageService_FindPageByID_NotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewPageService(db)

	_, err := svc.FindPageByID(context.Background(), "missing")
	assert.Equal(t, termsift.ENOTFOUND, termsift.ErrorCode(err))
}

func TestPageService_DeletePagesBySession(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	website := createTestWebsite(t, db)
	session := createTestSession(t, db, website.ID)
	svc := sqlite.NewPageService(db)
	ctx := context.Background()

	for i := range 3 {
		page := &termsift.PageRecord{
			SessionID: session.ID,
			WebsiteID: website.ID,
			URL:       fmt.Sprintf("https://example.com/del/%d", i),
		}
		require.NoError(t, svc.CreatePage(ctx, page))
	}

	require.NoError(t, svc.DeletePagesBySession(ctx, session.ID))

	count, err := svc.CountPagesBySession(ctx, session.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
