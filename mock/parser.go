package mock

import "github.com/termsift/termsift"

var _ termsift.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of termsift.PageParser.
type PageParser struct {
	ParseFn func(html, pageURL string) *termsift.ParsedPage
}

func (p *PageParser) Parse(html, pageURL string) *termsift.ParsedPage {
	return p.ParseFn(html, pageURL)
}
