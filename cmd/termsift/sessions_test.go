package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
	main "github.com/termsift/termsift/cmd/termsift"
	"github.com/termsift/termsift/mock"
)

func TestSessionsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists sessions newest first", func(t *testing.T) {
		t.Parallel()

		sessions := &mock.SessionService{
			FindSessionsFn: func(_ context.Context, _ termsift.SessionFilter) ([]*termsift.CrawlSession, error) {
				return []*termsift.CrawlSession{
					{
						ID:          "session-2",
						RootURL:     "https://example.com/docs",
						Status:      termsift.SessionCompleted,
						PagesSaved:  42,
						PagesFailed: 1,
						StartedAt:   time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
					},
					{
						ID:         "session-1",
						RootURL:    "https://other.com/",
						Status:     termsift.SessionFailed,
						StartedAt:  time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
						PagesSaved: 0,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sessions: sessions,
		}

		err := (&main.SessionsCmd{}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "session-2")
		assert.Contains(t, output, "completed")
		assert.Contains(t, output, "https://example.com/docs")
		assert.Contains(t, output, "42 saved, 1 failed")
		assert.Contains(t, output, "2025-06-02 09:30")
		assert.Contains(t, output, "session-1")
		assert.Contains(t, output, "failed")
	})

	t.Run("prints hint when no sessions exist", func(t *testing.T) {
		t.Parallel()

		sessions := &mock.SessionService{
			FindSessionsFn: func(_ context.Context, _ termsift.SessionFilter) ([]*termsift.CrawlSession, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Sessions: sessions,
		}

		err := (&main.SessionsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No sessions found. Use 'termsift crawl' to create one.")
	})

	t.Run("reports service errors on stderr", func(t *testing.T) {
		t.Parallel()

		sessions := &mock.SessionService{
			FindSessionsFn: func(_ context.Context, _ termsift.SessionFilter) ([]*termsift.CrawlSession, error) {
				return nil, termsift.Errorf(termsift.EINTERNAL, "database locked")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Sessions: sessions,
		}

		err := (&main.SessionsCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "database locked")
	})
}
