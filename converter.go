package termsift

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown. The input should be
	// clean HTML, e.g. a stored page's raw or extracted content.
	Convert(html string) (string, error)
}
