// Package readability extracts main page content using Mozilla's
// readability algorithm as implemented by go-shiori/go-readability.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/termsift/termsift"
)

// Ensure Extractor implements termsift.ContentExtractor at compile time.
var _ termsift.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*termsift.ExtractResult, error) {
	if rawHTML == "" {
		return nil, termsift.Errorf(termsift.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &termsift.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		ContentText: article.TextContent,
	}, nil
}
