package termsift

// LinkInfo describes one anchor found on a page, with its href resolved
// against the page URL.
type LinkInfo struct {
	URL  string `json:"url"`
	Text string `json:"text"`

	// IsInternal reports whether the resolved URL's host exactly matches
	// the page URL's host. Subdomains count as external.
	IsInternal bool `json:"is_internal"`

	// Emphasis is resolved from the anchor element itself upward, so it
	// always includes the link-text type.
	Emphasis EmphasisSet `json:"emphasis"`
}

// ParsedPage is the complete extraction result for one page.
type ParsedPage struct {
	URL   string `json:"url"`
	Title string `json:"title"`

	// MetaDescription is nil when the page has no usable
	// <meta name="description"> element.
	MetaDescription *string `json:"meta_description"`

	// PlainText is the visible text of the page with whitespace collapsed
	// to single spaces.
	PlainText string `json:"plain_text"`

	Tokens        []TextToken `json:"tokens"`
	Links         []LinkInfo  `json:"links"`
	ImageAltTexts []string    `json:"image_alt_texts"`

	// EmphasisStats counts, per emphasis type, the tokens carrying that
	// type. Every defined type is present as a key, zero-valued types
	// included. A token with multiple types counts once per type.
	EmphasisStats map[EmphasisType]int `json:"emphasis_stats"`

	// WordCount is the total number of tokens.
	WordCount int `json:"word_count"`
}

// BuildParsedPage assembles a ParsedPage, deriving WordCount and
// EmphasisStats from the token stream. All construction goes through here so
// the derived fields can never drift from Tokens. Nil slices are normalized
// to empty ones.
func BuildParsedPage(pageURL, title string, metaDescription *string, plainText string, tokens []TextToken, links []LinkInfo, imageAltTexts []string) *ParsedPage {
	if tokens == nil {
		tokens = []TextToken{}
	}
	if links == nil {
		links = []LinkInfo{}
	}
	if imageAltTexts == nil {
		imageAltTexts = []string{}
	}

	stats := make(map[EmphasisType]int, numEmphasisTypes)
	for t := EmphasisType(0); t < numEmphasisTypes; t++ {
		stats[t] = 0
	}
	for _, tok := range tokens {
		for _, t := range tok.Emphasis.Types() {
			stats[t]++
		}
	}

	return &ParsedPage{
		URL:             pageURL,
		Title:           title,
		MetaDescription: metaDescription,
		PlainText:       plainText,
		Tokens:          tokens,
		Links:           links,
		ImageAltTexts:   imageAltTexts,
		EmphasisStats:   stats,
		WordCount:       len(tokens),
	}
}

// PageParser turns raw HTML into a ParsedPage.
type PageParser interface {
	// Parse extracts tokens, links, and metadata from html. pageURL is the
	// address the HTML was fetched from; relative links are resolved
	// against it. Parse never fails: malformed or empty input yields a
	// degraded page (URL set, empty everything else) rather than an error.
	Parse(html string, pageURL string) *ParsedPage
}
