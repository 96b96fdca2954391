package termsift_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/termsift/termsift"
)

func TestEmphasisSet_AddHasLen(t *testing.T) {
	t.Parallel()

	var s termsift.EmphasisSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has(termsift.EmphasisBold))

	s.Add(termsift.EmphasisBold)
	s.Add(termsift.EmphasisHeader)
	s.Add(termsift.EmphasisBold) // duplicate is a no-op

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(termsift.EmphasisBold))
	assert.True(t, s.Has(termsift.EmphasisHeader))
	assert.False(t, s.Has(termsift.EmphasisCode))
}

func TestEmphasisSet_ValueSemantics(t *testing.T) {
	t.Parallel()

	original := termsift.NewEmphasisSet(termsift.EmphasisBold)
	copied := original
	copied.Add(termsift.EmphasisItalic)

	assert.False(t, original.Has(termsift.EmphasisItalic), "copies must be independent")
	assert.True(t, copied.Has(termsift.EmphasisItalic))
	assert.Equal(t, termsift.NewEmphasisSet(termsift.EmphasisBold), original)
}

func TestEmphasisSet_TypesOrder(t *testing.T) {
	t.Parallel()

	s := termsift.NewEmphasisSet(
		termsift.EmphasisBlockquote,
		termsift.EmphasisBold,
		termsift.EmphasisLinkText,
	)

	assert.Equal(t, []termsift.EmphasisType{
		termsift.EmphasisBold,
		termsift.EmphasisLinkText,
		termsift.EmphasisBlockquote,
	}, s.Types())
}

func TestEmphasisSet_String(t *testing.T) {
	t.Parallel()

	s := termsift.NewEmphasisSet(termsift.EmphasisBold, termsift.EmphasisHeader)
	assert.Equal(t, "[bold header]", s.String())
	assert.Equal(t, "[]", termsift.EmphasisSet(0).String())
}

func TestEmphasisSet_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	s := termsift.NewEmphasisSet(termsift.EmphasisStrong, termsift.EmphasisHeader)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["header","strong"]`, string(data))

	var decoded termsift.EmphasisSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestEmphasisType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "emphasis", termsift.EmphasisEm.String())
	assert.Equal(t, "link_text", termsift.EmphasisLinkText.String())
}

func TestParseEmphasisType(t *testing.T) {
	t.Parallel()

	got, err := termsift.ParseEmphasisType("blockquote")
	require.NoError(t, err)
	assert.Equal(t, termsift.EmphasisBlockquote, got)

	_, err = termsift.ParseEmphasisType("shouty")
	assert.Equal(t, termsift.EINVALID, termsift.ErrorCode(err))
}

func TestEmphasisTypes_Complete(t *testing.T) {
	t.Parallel()

	types := termsift.EmphasisTypes()
	assert.Len(t, types, 9)
	seen := map[string]bool{}
	for _, typ := range types {
		seen[typ.String()] = true
	}
	for _, name := range []string{
		"bold", "italic", "underline", "header", "link_text",
		"strong", "emphasis", "code", "blockquote",
	} {
		assert.True(t, seen[name], "missing emphasis type %s", name)
	}
}

func TestEmphasisStatsMap_JSON(t *testing.T) {
	t.Parallel()

	stats := map[termsift.EmphasisType]int{
		termsift.EmphasisBold:   2,
		termsift.EmphasisHeader: 1,
	}

	data, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bold":2,"header":1}`, string(data))

	var decoded map[termsift.EmphasisType]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, stats, decoded)
}
