package mock

import (
	"context"

	"github.com/termsift/termsift"
)

var _ termsift.WebsiteService = (*WebsiteService)(nil)

// WebsiteService is a mock implementation of termsift.WebsiteService.
type WebsiteService struct {
	GetOrCreateWebsiteFn func(ctx context.Context, domain, baseURL string) (*termsift.Website, error)
	FindWebsiteByIDFn    func(ctx context.Context, id string) (*termsift.Website, error)
	FindWebsitesFn       func(ctx context.Context, filter termsift.WebsiteFilter) ([]*termsift.Website, error)
}

func (s *WebsiteService) GetOrCreateWebsite(ctx context.Context, domain, baseURL string) (*termsift.Website, error) {
	return s.GetOrCreateWebsiteFn(ctx, domain, baseURL)
}

func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id string) (*termsift.Website, error) {
	return s.FindWebsiteByIDFn(ctx, id)
}

func (s *WebsiteService) FindWebsites(ctx context.Context, filter termsift.WebsiteFilter) ([]*termsift.Website, error) {
	return s.FindWebsitesFn(ctx, filter)
}
