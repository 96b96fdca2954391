package termsift

import (
	"context"
	"time"
)

// ExportedPage is one stored page rendered for export.
type ExportedPage struct {
	// URL the content was crawled from; it determines the output path.
	URL string

	Title string

	// FetchedAt is when the page was crawled, recorded in the frontmatter.
	FetchedAt time.Time

	// Content is the rendered body, Markdown or plain text.
	Content string
}

// ExportStore persists exported pages with atomic replace semantics: pages
// accumulate in a staging area and become visible only on Commit, so an
// interrupted export never leaves a half-written tree behind.
type ExportStore interface {
	// Save stages one exported page.
	Save(ctx context.Context, page *ExportedPage) error

	// Commit atomically replaces any previous export with the staged pages.
	Commit() error

	// Abort discards the staged pages.
	Abort() error
}
