package goquery_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
)

func TestParser_Parse_EmphasisTagMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want termsift.EmphasisType
	}{
		{"b", termsift.EmphasisBold},
		{"strong", termsift.EmphasisStrong},
		{"i", termsift.EmphasisItalic},
		{"em", termsift.EmphasisEm},
		{"u", termsift.EmphasisUnderline},
		{"code", termsift.EmphasisCode},
		{"h1", termsift.EmphasisHeader},
		{"h2", termsift.EmphasisHeader},
		{"h3", termsift.EmphasisHeader},
		{"h4", termsift.EmphasisHeader},
		{"h5", termsift.EmphasisHeader},
		{"h6", termsift.EmphasisHeader},
		{"blockquote", termsift.EmphasisBlockquote},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()

			html := fmt.Sprintf(`<html><body><%s>word</%s></body></html>`, tt.tag, tt.tag)
			page := parsePage(t, html)

			require.Len(t, page.Tokens, 1)
			assert.True(t, page.Tokens[0].Emphasis.Has(tt.want))
			assert.Equal(t, 1, page.Tokens[0].Emphasis.Len())
			assert.Equal(t, 1, page.EmphasisStats[tt.want])
		})
	}
}

func TestParser_Parse_EmphasisInheritance(t *testing.T) {
	t.Parallel()

	t.Run("nested distinct types accumulate", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, `<html><body><h1><strong>Alpha</strong></h1></body></html>`)

		require.Len(t, page.Tokens, 1)
		emphasis := page.Tokens[0].Emphasis
		assert.True(t, emphasis.Has(termsift.EmphasisHeader))
		assert.True(t, emphasis.Has(termsift.EmphasisStrong))
		assert.Equal(t, 2, emphasis.Len())
	})

	t.Run("deep nesting accumulates through neutral tags", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, `<html><body>
			<blockquote><div><p><em><code>word</code></em></p></div></blockquote>
		</body></html>`)

		require.Len(t, page.Tokens, 1)
		emphasis := page.Tokens[0].Emphasis
		assert.True(t, emphasis.Has(termsift.EmphasisBlockquote))
		assert.True(t, emphasis.Has(termsift.EmphasisEm))
		assert.True(t, emphasis.Has(termsift.EmphasisCode))
		assert.Equal(t, 3, emphasis.Len())
	})

	t.Run("same type nested collapses to one", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, `<html><body><em>outer <em>inner</em></em></body></html>`)

		require.Equal(t, []string{"outer", "inner"}, tokenTexts(page.Tokens))
		for _, tok := range page.Tokens {
			assert.Equal(t, 1, tok.Emphasis.Len(), "token %q", tok.Text)
			assert.True(t, tok.Emphasis.Has(termsift.EmphasisEm))
		}
		assert.Equal(t, 2, page.EmphasisStats[termsift.EmphasisEm])
	})

	t.Run("neutral tags add nothing", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, `<html><body><div><span><p>plain</p></span></div></body></html>`)

		require.Len(t, page.Tokens, 1)
		assert.Equal(t, 0, page.Tokens[0].Emphasis.Len())
	})

	t.Run("siblings do not leak emphasis", func(t *testing.T) {
		t.Parallel()

		page := parsePage(t, `<html><body><p><b>bold</b> plain</p></body></html>`)

		require.Equal(t, []string{"bold", "plain"}, tokenTexts(page.Tokens))
		assert.True(t, page.Tokens[0].Emphasis.Has(termsift.EmphasisBold))
		assert.Equal(t, 0, page.Tokens[1].Emphasis.Len())
	})
}

func TestParser_Parse_AnchorTextEmphasis(t *testing.T) {
	t.Parallel()

	page := parsePage(t, `<html><body><h2><a href="/guide">Guide link</a></h2></body></html>`)

	require.Equal(t, []string{"Guide", "link"}, tokenTexts(page.Tokens))
	for _, tok := range page.Tokens {
		assert.True(t, tok.Emphasis.Has(termsift.EmphasisLinkText), "token %q", tok.Text)
		assert.True(t, tok.Emphasis.Has(termsift.EmphasisHeader), "token %q", tok.Text)
	}
}

func TestParser_Parse_TitleIsHeaderEmphasis(t *testing.T) {
	t.Parallel()

	page := parsePage(t, `<html><head><title>Page Title</title></head><body><p>body text</p></body></html>`)

	assert.Equal(t, "Page Title", page.Title)

	require.Equal(t, []string{"Page", "Title", "body", "text"}, tokenTexts(page.Tokens))
	for _, tok := range page.Tokens[:2] {
		assert.True(t, tok.Emphasis.Has(termsift.EmphasisHeader), "token %q", tok.Text)
		assert.Equal(t, 1, tok.Emphasis.Len())
	}
	assert.Equal(t, []string{"title", "head", "html"}, page.Tokens[0].ParentTags)

	// Title text participates in the page text like any other node.
	assert.Equal(t, "Page Title body text", page.PlainText)
	assert.Equal(t, 2, page.EmphasisStats[termsift.EmphasisHeader])
}
