package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	main "github.com/termsift/termsift/cmd/termsift"
)

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments returns error with hint", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("sessions against a fresh database prints hint", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"sessions"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No sessions found")
	})

	t.Run("query does not open the database", func(t *testing.T) {
		t.Parallel()

		html := "<html><body><h1>Hello</h1></body></html>"
		file := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(file, []byte(html), 0644))

		m := main.NewMain()
		// Un-openable path: the command must succeed without touching it
		m.DBPath = filepath.Join(t.TempDir(), "missing", "test.db")

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"query", file, "//h1"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "Hello\n", stdout.String())
	})

	t.Run("inspect parses a file end to end", func(t *testing.T) {
		t.Parallel()

		html := "<html><head><title>Widget Guide</title></head><body><p>Hello world</p></body></html>"
		file := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(file, []byte(html), 0644))

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "missing", "test.db")

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"inspect", file}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Widget Guide")
		assert.Contains(t, output, "file:///inspect")
		assert.Contains(t, output, `"tokens"`)
	})

	t.Run("query reads stdin through Main", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		m.Stdin = strings.NewReader("<html><body><p>From stdin</p></body></html>")

		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"query", "-", "//p"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "From stdin\n", stdout.String())
	})

	t.Run("crawl rejects an unknown extractor", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"crawl", "godocs", "https://example.com", "--extractor", "bogus"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown extractor")
		assert.Contains(t, stderr.String(), "available extractors are trafilatura and readability")
	})

	t.Run("delete without force fails end to end", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"delete", "session-x"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "use --force to confirm deletion")
	})
}
