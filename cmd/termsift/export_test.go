package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
	main "github.com/termsift/termsift/cmd/termsift"
	"github.com/termsift/termsift/mock"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	session := &termsift.CrawlSession{ID: "session-123", WebsiteID: "website-123"}

	sessionByID := func(_ context.Context, id string) (*termsift.CrawlSession, error) {
		if id != session.ID {
			return nil, termsift.Errorf(termsift.ENOTFOUND, "session not found")
		}
		return session, nil
	}

	websiteByID := func(_ context.Context, id string) (*termsift.Website, error) {
		return &termsift.Website{ID: id, Domain: "example.com", BaseURL: "https://example.com/"}, nil
	}

	testPages := []*termsift.PageRecord{
		{
			URL:       "https://example.com/docs/page1",
			Title:     "Page One",
			PlainText: "Plain text one.",
			RawHTML:   "<html><body><h1>Page One</h1></body></html>",
			FetchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			URL:       "https://example.com/docs/guide/",
			Title:     "Guide",
			PlainText: "Plain text guide.",
			RawHTML:   "<html><body><h1>Guide</h1></body></html>",
			FetchedAt: time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC),
		},
	}

	t.Run("exports pages as markdown files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		sessions := &mock.SessionService{FindSessionByIDFn: sessionByID}
		websites := &mock.WebsiteService{FindWebsiteByIDFn: websiteByID}
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ termsift.PageFilter) ([]*termsift.PageRecord, error) {
				return testPages, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "# Converted", nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Sessions:  sessions,
			Websites:  websites,
			Pages:     pages,
			Converter: converter,
		}

		cmd := &main.ExportCmd{Session: "session-123", Dir: dir, Format: "markdown"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 2 pages to "+filepath.Join(dir, "example.com"))

		content, err := os.ReadFile(filepath.Join(dir, "example.com", "docs", "page1.md"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "source: https://example.com/docs/page1")
		assert.Contains(t, string(content), "title: Page One")
		assert.Contains(t, string(content), "crawled: 2025-06-01")
		assert.Contains(t, string(content), "# Converted")

		// Trailing-slash URLs become index files
		_, err = os.Stat(filepath.Join(dir, "example.com", "docs", "guide", "index.md"))
		require.NoError(t, err)
	})

	t.Run("text format writes plain text without conversion", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		sessions := &mock.SessionService{FindSessionByIDFn: sessionByID}
		websites := &mock.WebsiteService{FindWebsiteByIDFn: websiteByID}
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ termsift.PageFilter) ([]*termsift.PageRecord, error) {
				return testPages[:1], nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Sessions: sessions,
			Websites: websites,
			Pages:    pages,
			// No converter: text export must not need one
		}

		cmd := &main.ExportCmd{Session: "session-123", Dir: dir, Format: "text"}

		err := cmd.Run(deps)

		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "example.com", "docs", "page1.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Plain text one.")
	})

	t.Run("unknown format returns EINVALID", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ExportCmd{Session: "session-123", Dir: t.TempDir(), Format: "pdf"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, termsift.EINVALID, termsift.ErrorCode(err))
		assert.Contains(t, stderr.String(), "use markdown or text")
	})

	t.Run("conversion failures skip the page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		sessions := &mock.SessionService{FindSessionByIDFn: sessionByID}
		websites := &mock.WebsiteService{FindWebsiteByIDFn: websiteByID}
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ termsift.PageFilter) ([]*termsift.PageRecord, error) {
				return testPages, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				if html == testPages[0].RawHTML {
					return "", termsift.Errorf(termsift.EINTERNAL, "malformed table")
				}
				return "# Converted", nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Sessions:  sessions,
			Websites:  websites,
			Pages:     pages,
			Converter: converter,
		}

		cmd := &main.ExportCmd{Session: "session-123", Dir: dir, Format: "markdown"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 1 pages")
		assert.Contains(t, stdout.String(), "Failed to convert 1 pages")
		assert.Contains(t, stderr.String(), "skip https://example.com/docs/page1")

		_, err = os.Stat(filepath.Join(dir, "example.com", "docs", "page1.md"))
		assert.True(t, os.IsNotExist(err), "failed page should not be exported")
		_, err = os.Stat(filepath.Join(dir, "example.com", "docs", "guide", "index.md"))
		assert.NoError(t, err)
	})

	t.Run("aborts when nothing can be exported", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		sessions := &mock.SessionService{FindSessionByIDFn: sessionByID}
		websites := &mock.WebsiteService{FindWebsiteByIDFn: websiteByID}
		pages := &mock.PageService{
			FindPagesFn: func(_ context.Context, _ termsift.PageFilter) ([]*termsift.PageRecord, error) {
				return testPages, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(_ string) (string, error) {
				return "", termsift.Errorf(termsift.EINTERNAL, "malformed table")
			},
		}

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Sessions:  sessions,
			Websites:  websites,
			Pages:     pages,
			Converter: converter,
		}

		cmd := &main.ExportCmd{Session: "session-123", Dir: dir, Format: "markdown"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, termsift.EINTERNAL, termsift.ErrorCode(err))

		// Nothing committed, nothing staged left behind
		_, err = os.Stat(filepath.Join(dir, "example.com"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(dir, "example.com.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown session shows hint", func(t *testing.T) {
		t.Parallel()

		sessions := &mock.SessionService{FindSessionByIDFn: sessionByID}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Sessions: sessions,
		}

		cmd := &main.ExportCmd{Session: "session-missing", Dir: t.TempDir(), Format: "markdown"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, termsift.ENOTFOUND, termsift.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Use 'termsift sessions' to see available sessions")
	})
}
