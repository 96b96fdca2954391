package termsift

import (
	"context"
	"time"
)

// Crawl session statuses.
const (
	SessionRunning   = "running"
	SessionCompleted = "completed"
	SessionFailed    = "failed"
)

// CrawlSession records one crawl of a website: where it started, how it was
// configured, and how it ended.
type CrawlSession struct {
	ID          string          `json:"id"`
	WebsiteID   string          `json:"websiteId"`
	RootURL     string          `json:"rootUrl"`
	Parameters  CrawlParameters `json:"parameters"`
	Status      string          `json:"status"`
	PagesSaved  int             `json:"pagesSaved"`
	PagesFailed int             `json:"pagesFailed"`
	StartedAt   time.Time       `json:"startedAt"`

	// CompletedAt is zero while the session is running.
	CompletedAt time.Time `json:"completedAt"`
}

// Validate returns an error if the session contains invalid fields.
func (s *CrawlSession) Validate() error {
	if s.WebsiteID == "" {
		return Errorf(EINVALID, "session website ID required")
	}
	if s.RootURL == "" {
		return Errorf(EINVALID, "session root URL required")
	}
	return nil
}

// CrawlParameters captures the knobs a session was run with. Stored as JSON
// alongside the session so past crawls stay reproducible.
type CrawlParameters struct {
	MaxPages    int      `json:"maxPages"`
	MaxDepth    int      `json:"maxDepth"`
	Concurrency int      `json:"concurrency"`
	RPS         float64  `json:"rps"`
	Render      bool     `json:"render"`
	Extractor   string   `json:"extractor"`
	Include     []string `json:"include,omitempty"`
	Exclude     []string `json:"exclude,omitempty"`
}

// SessionService represents a service for managing crawl sessions.
type SessionService interface {
	// CreateSession creates a new session in the running state.
	CreateSession(ctx context.Context, session *CrawlSession) error

	// FindSessionByID retrieves a session by ID.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*CrawlSession, error)

	// FindSessions retrieves sessions matching the filter, newest first.
	FindSessions(ctx context.Context, filter SessionFilter) ([]*CrawlSession, error)

	// CompleteSession transitions a session out of the running state,
	// recording the outcome counters and the completion time.
	// Returns ENOTFOUND if the session does not exist.
	CompleteSession(ctx context.Context, id string, status string, saved, failed int) error

	// DeleteSession permanently removes a session and all its pages.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}

// SessionFilter represents a filter for FindSessions.
type SessionFilter struct {
	ID        *string `json:"id"`
	WebsiteID *string `json:"websiteId"`
	Status    *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
