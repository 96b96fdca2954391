package mock

import (
	"context"

	"github.com/termsift/termsift"
)

var _ termsift.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of termsift.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *termsift.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *termsift.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
