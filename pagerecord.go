package termsift

import (
	"context"
	"time"
)

// PageRecord is a stored crawl result: the parse projection of one page
// plus the raw HTML it came from.
type PageRecord struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	WebsiteID string `json:"websiteId"`
	URL       string `json:"url"`

	// URLHash is derived from URL on insert and backs duplicate detection.
	URLHash string `json:"urlHash"`

	// ContentHash is derived from RawHTML on insert; unchanged pages keep
	// the same hash across sessions.
	ContentHash string `json:"contentHash"`

	Title           string               `json:"title"`
	MetaDescription *string              `json:"metaDescription"`
	PlainText       string               `json:"plainText"`
	MainText        string               `json:"mainText"`
	RawHTML         string               `json:"rawHtml"`
	WordCount       int                  `json:"wordCount"`
	LinkCount       int                  `json:"linkCount"`
	EmphasisStats   map[EmphasisType]int `json:"emphasisStats"`
	FetchedAt       time.Time            `json:"fetchedAt"`
}

// Validate returns an error if the page record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.SessionID == "" {
		return Errorf(EINVALID, "page session ID required")
	}
	if p.WebsiteID == "" {
		return Errorf(EINVALID, "page website ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageService represents a service for managing stored pages.
type PageService interface {
	// CreatePage stores a new page record.
	// Returns ECONFLICT if a page with the same URL already exists.
	CreatePage(ctx context.Context, page *PageRecord) error

	// FindPageByID retrieves a page by ID.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByID(ctx context.Context, id string) (*PageRecord, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*PageRecord, error)

	// PageExists reports whether a page with this URL has been stored by
	// any session. The check uses the URL hash, not the raw string.
	PageExists(ctx context.Context, url string) (bool, error)

	// CountPagesBySession returns the number of pages stored for a session.
	CountPagesBySession(ctx context.Context, sessionID string) (int, error)

	// DeletePagesBySession removes all pages for a session.
	DeletePagesBySession(ctx context.Context, sessionID string) error
}

// SortOrder represents the sort order for page queries.
type SortOrder string

// SortOrder constants for PageFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByWordCount SortOrder = "word_count"
)

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	ID        *string `json:"id"`
	SessionID *string `json:"sessionId"`
	WebsiteID *string `json:"websiteId"`
	URL       *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
