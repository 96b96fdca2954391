package mock

import "github.com/termsift/termsift"

var _ termsift.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of termsift.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*termsift.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*termsift.ExtractResult, error) {
	return e.ExtractFn(html)
}
