package mock

import (
	"context"

	"github.com/termsift/termsift"
)

var _ termsift.PageService = (*PageService)(nil)

// PageService is a mock implementation of termsift.PageService.
type PageService struct {
	CreatePageFn           func(ctx context.Context, page *termsift.PageRecord) error
	FindPageByIDFn         func(ctx context.Context, id string) (*termsift.PageRecord, error)
	FindPagesFn            func(ctx context.Context, filter termsift.PageFilter) ([]*termsift.PageRecord, error)
	PageExistsFn           func(ctx context.Context, url string) (bool, error)
	CountPagesBySessionFn  func(ctx context.Context, sessionID string) (int, error)
	DeletePagesBySessionFn func(ctx context.Context, sessionID string) error
}

func (s *PageService) CreatePage(ctx context.Context, page *termsift.PageRecord) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByID(ctx context.Context, id string) (*termsift.PageRecord, error) {
	return s.FindPageByIDFn(ctx, id)
}

func (s *PageService) FindPages(ctx context.Context, filter termsift.PageFilter) ([]*termsift.PageRecord, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) PageExists(ctx context.Context, url string) (bool, error) {
	if s.PageExistsFn == nil {
		return false, nil
	}
	return s.PageExistsFn(ctx, url)
}

func (s *PageService) CountPagesBySession(ctx context.Context, sessionID string) (int, error) {
	return s.CountPagesBySessionFn(ctx, sessionID)
}

func (s *PageService) DeletePagesBySession(ctx context.Context, sessionID string) error {
	return s.DeletePagesBySessionFn(ctx, sessionID)
}
