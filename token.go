package termsift

// TextToken is a single word extracted from a page, annotated with the
// emphasis and position context term scoring needs.
type TextToken struct {
	// Text is the word after edge punctuation has been stripped.
	Text string `json:"text"`

	// CleanedText is Text passed through the same stripping again. The
	// stripping is idempotent, so the two fields always match; both are kept
	// because stored pages expose both columns.
	CleanedText string `json:"cleaned_text"`

	// Emphasis holds every emphasis context inherited from ancestor
	// elements. Value semantics: each token owns an independent copy.
	Emphasis EmphasisSet `json:"emphasis"`

	// Position is the 0-based index of the token within the whole page.
	Position int `json:"position"`

	// ParagraphPosition mirrors SentencePosition.
	ParagraphPosition int `json:"paragraph_position"`

	// SentencePosition is the 0-based index of the token within its
	// sentence.
	SentencePosition int `json:"sentence_position"`

	// IsCapitalized reports whether CleanedText starts with an uppercase
	// letter.
	IsCapitalized bool `json:"is_capitalized"`

	// IsSentenceStart marks the first token of the first sentence of each
	// text node.
	IsSentenceStart bool `json:"is_sentence_start"`

	// ParentTags lists the tag names of the source text node's element
	// ancestors, nearest first.
	ParentTags []string `json:"parent_tags"`

	// TextGroupID groups tokens that came from the same text node. IDs
	// increase in document order but may skip values: a text node that
	// yields no tokens (e.g. bare punctuation) still consumes an ID.
	TextGroupID int `json:"text_group_id"`
}
