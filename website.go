package termsift

import (
	"context"
	"time"
)

// Website represents a crawled site, keyed by domain.
type Website struct {
	ID        string    `json:"id"`
	Domain    string    `json:"domain"`
	BaseURL   string    `json:"baseUrl"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Validate returns an error if the website contains invalid fields.
func (w *Website) Validate() error {
	if w.Domain == "" {
		return Errorf(EINVALID, "website domain required")
	}
	if w.BaseURL == "" {
		return Errorf(EINVALID, "website base URL required")
	}
	return nil
}

// WebsiteService represents a service for managing websites.
type WebsiteService interface {
	// GetOrCreateWebsite finds the website for domain, creating it if
	// missing. On an existing website it refreshes LastSeen.
	GetOrCreateWebsite(ctx context.Context, domain, baseURL string) (*Website, error)

	// FindWebsiteByID retrieves a website by ID.
	// Returns ENOTFOUND if the website does not exist.
	FindWebsiteByID(ctx context.Context, id string) (*Website, error)

	// FindWebsites retrieves websites matching the filter.
	FindWebsites(ctx context.Context, filter WebsiteFilter) ([]*Website, error)
}

// WebsiteFilter represents a filter for FindWebsites.
type WebsiteFilter struct {
	ID     *string `json:"id"`
	Domain *string `json:"domain"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
