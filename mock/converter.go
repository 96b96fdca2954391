package mock

import "github.com/termsift/termsift"

var _ termsift.Converter = (*Converter)(nil)

// Converter is a mock implementation of termsift.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
