package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/termsift/termsift"
)

// Compile-time interface verification.
var _ termsift.WebsiteService = (*WebsiteService)(nil)

// WebsiteService implements termsift.WebsiteService using SQLite.
type WebsiteService struct {
	db *DB
}

// NewWebsiteService creates a new WebsiteService.
func NewWebsiteService(db *DB) *WebsiteService {
	return &WebsiteService{db: db}
}

// GetOrCreateWebsite finds the website for domain, creating it if missing.
// On an existing website it refreshes last_seen. The connection pool is
// capped at one connection, so check-then-insert cannot race.
func (s *WebsiteService) GetOrCreateWebsite(ctx context.Context, domain, baseURL string) (*termsift.Website, error) {
	website, err := s.findWebsiteByDomain(ctx, domain)
	if err == nil {
		website.LastSeen = time.Now().UTC()
		_, err = s.db.ExecContext(ctx,
			"UPDATE websites SET last_seen = ? WHERE id = ?",
			website.LastSeen.Format(time.RFC3339), website.ID)
		if err != nil {
			return nil, err
		}
		return website, nil
	}
	if termsift.ErrorCode(err) != termsift.ENOTFOUND {
		return nil, err
	}

	website = &termsift.Website{
		Domain:  domain,
		BaseURL: baseURL,
	}
	if err := website.Validate(); err != nil {
		return nil, err
	}

	website.ID = uuid.New().String()
	now := time.Now().UTC()
	website.FirstSeen = now
	website.LastSeen = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO websites (id, domain, base_url, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?)
	`, website.ID, website.Domain, website.BaseURL,
		website.FirstSeen.Format(time.RFC3339), website.LastSeen.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return website, nil
}

// FindWebsiteByID retrieves a website by ID.
func (s *WebsiteService) FindWebsiteByID(ctx context.Context, id string) (*termsift.Website, error) {
	return s.findWebsite(ctx, "id = ?", id)
}

func (s *WebsiteService) findWebsiteByDomain(ctx context.Context, domain string) (*termsift.Website, error) {
	return s.findWebsite(ctx, "domain = ?", domain)
}

func (s *WebsiteService) findWebsite(ctx context.Context, where string, arg any) (*termsift.Website, error) {
	var website termsift.Website
	var firstSeen, lastSeen string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, domain, base_url, first_seen, last_seen
		FROM websites
		WHERE `+where,
		arg).Scan(&website.ID, &website.Domain, &website.BaseURL, &firstSeen, &lastSeen)

	if err == sql.ErrNoRows {
		return nil, termsift.Errorf(termsift.ENOTFOUND, "website not found")
	}
	if err != nil {
		return nil, err
	}

	if website.FirstSeen, err = parseRFC3339(firstSeen, "first_seen"); err != nil {
		return nil, err
	}
	if website.LastSeen, err = parseRFC3339(lastSeen, "last_seen"); err != nil {
		return nil, err
	}

	return &website, nil
}

// FindWebsites retrieves websites matching the filter.
func (s *WebsiteService) FindWebsites(ctx context.Context, filter termsift.WebsiteFilter) ([]*termsift.Website, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, domain, base_url, first_seen, last_seen FROM websites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}

	query.WriteString(" ORDER BY last_seen DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var websites []*termsift.Website
	for rows.Next() {
		var website termsift.Website
		var firstSeen, lastSeen string

		if err := rows.Scan(&website.ID, &website.Domain, &website.BaseURL, &firstSeen, &lastSeen); err != nil {
			return nil, err
		}
		if website.FirstSeen, err = parseRFC3339(firstSeen, "first_seen"); err != nil {
			return nil, err
		}
		if website.LastSeen, err = parseRFC3339(lastSeen, "last_seen"); err != nil {
			return nil, err
		}

		websites = append(websites, &website)
	}

	return websites, rows.Err()
}
