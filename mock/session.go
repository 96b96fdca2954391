package mock

import (
	"context"

	"github.com/termsift/termsift"
)

var _ termsift.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of termsift.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, session *termsift.CrawlSession) error
	FindSessionByIDFn func(ctx context.Context, id string) (*termsift.CrawlSession, error)
	FindSessionsFn    func(ctx context.Context, filter termsift.SessionFilter) ([]*termsift.CrawlSession, error)
	CompleteSessionFn func(ctx context.Context, id string, status string, saved, failed int) error
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, session *termsift.CrawlSession) error {
	return s.CreateSessionFn(ctx, session)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*termsift.CrawlSession, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) FindSessions(ctx context.Context, filter termsift.SessionFilter) ([]*termsift.CrawlSession, error) {
	return s.FindSessionsFn(ctx, filter)
}

func (s *SessionService) CompleteSession(ctx context.Context, id string, status string, saved, failed int) error {
	return s.CompleteSessionFn(ctx, id, status, saved, failed)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
