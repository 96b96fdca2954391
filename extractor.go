package termsift

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string

	// ContentText is the main content as plain text.
	ContentText string
}

// ContentExtractor isolates the main content of an HTML page, removing
// boilerplate. Unlike PageParser, which tokenizes everything visible, an
// extractor judges what the page is about.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
