package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
	"github.com/termsift/termsift/sqlite"
)

func TestWebsiteService_GetOrCreateWebsite(t *testing.T) {
	t.Parallel()

	t.Run("creates website on first call", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()

		website, err := svc.GetOrCreateWebsite(ctx, "example.com", "https://example.com/")
		require.NoError(t, err)

		assert.NotEmpty(t, website.ID)
		assert.Equal(t, "example.com", website.Domain)
		assert.Equal(t, "https://example.com/", website.BaseURL)
		assert.False(t, website.FirstSeen.IsZero())
		assert.Equal(t, website.FirstSeen, website.LastSeen)
	})

	t.Run("returns existing website on second call", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)
		ctx := context.Background()

		first, err := svc.GetOrCreateWebsite(ctx, "example.com", "https://example.com/")
		require.NoError(t, err)

		second, err := svc.GetOrCreateWebsite(ctx, "example.com", "https://example.com/other")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.BaseURL, second.BaseURL, "base URL is set at creation only")
		assert.False(t, second.LastSeen.Before(first.LastSeen))
	})

	t.Run("rejects empty domain", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)

		_, err := svc.GetOrCreateWebsite(context.Background(), "", "https://example.com/")
		assert.Equal(t, termsift.EINVALID, termsift.ErrorCode(err))
	})
}

func TestWebsiteService_FindWebsiteByID(t *testing.T) {
	t.Parallel()

	t.Run("finds existing website", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		website := createTestWebsite(t, db)
		svc := sqlite.NewWebsiteService(db)

		found, err := svc.FindWebsiteByID(context.Background(), website.ID)
		require.NoError(t, err)
		assert.Equal(t, website.Domain, found.Domain)
	})

	t.Run("returns ENOTFOUND for missing website", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewWebsiteService(db)

		_, err := svc.FindWebsiteByID(context.Background(), "missing")
		assert.Equal(t, termsift.ENOTFOUND, termsift.ErrorCode(err))
	})
}

func TestWebsiteService_FindWebsites(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewWebsiteService(db)
	ctx := context.Background()

	for _, domain := range []string{"a.com", "b.com", "c.com"} {
		_, err := svc.GetOrCreateWebsite(ctx, domain, "https://"+domain+"/")
		require.NoError(t, err)
	}

	t.Run("returns all without filter", func(t *testing.T) {
		websites, err := svc.FindWebsites(ctx, termsift.WebsiteFilter{})
		require.NoError(t, err)
		assert.Len(t, websites, 3)
	})

	t.Run("filters by domain", func(t *testing.T) {
		domain := "b.com"
		websites, err := svc.FindWebsites(ctx, termsift.WebsiteFilter{Domain: &domain})
		require.NoError(t, err)
		require.Len(t, websites, 1)
		assert.Equal(t, "b.com", websites[0].Domain)
	})

	t.Run("respects limit", func(t *testing.T) {
		websites, err := svc.FindWebsites(ctx, termsift.WebsiteFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, websites, 2)
	})
}
