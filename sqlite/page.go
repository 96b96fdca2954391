package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/termsift/termsift"
)

// Compile-time interface verification.
var _ termsift.PageService = (*PageService)(nil)

// PageService implements termsift.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage stores a new page record. The URL and content hashes are
// derived here so callers cannot store inconsistent values.
func (s *PageService) CreatePage(ctx context.Context, page *termsift.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.URLHash = hashString(page.URL)
	page.ContentHash = hashString(page.RawHTML)
	page.FetchedAt = time.Now().UTC()

	// The url_hash column is UNIQUE; checking first turns the eventual
	// constraint violation into a typed conflict the crawler can skip on.
	exists, err := s.PageExists(ctx, page.URL)
	if err != nil {
		return err
	}
	if exists {
		return termsift.Errorf(termsift.ECONFLICT, "page already stored for URL %q", page.URL)
	}

	stats, err := json.Marshal(page.EmphasisStats)
	if err != nil {
		return fmt.Errorf("failed to encode emphasis stats: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, session_id, website_id, url, url_hash, content_hash, title, meta_description,
			plain_text, main_text, raw_html, word_count, link_count, emphasis_stats, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.SessionID, page.WebsiteID, page.URL, page.URLHash, page.ContentHash,
		page.Title, page.MetaDescription, page.PlainText, page.MainText, page.RawHTML,
		page.WordCount, page.LinkCount, string(stats), page.FetchedAt.Format(time.RFC3339))

	return err
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*termsift.PageRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, website_id, url, url_hash, content_hash, title, meta_description,
			plain_text, main_text, raw_html, word_count, link_count, emphasis_stats, fetched_at
		FROM pages
		WHERE id = ?
	`, id)

	page, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, termsift.Errorf(termsift.ENOTFOUND, "page not found")
	}
	return page, err
}

// FindPages retrieves pages matching the filter.
func (s *PageService) FindPages(ctx context.Context, filter termsift.PageFilter) ([]*termsift.PageRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, session_id, website_id, url, url_hash, content_hash, title, meta_description,
		plain_text, main_text, raw_html, word_count, link_count, emphasis_stats, fetched_at
		FROM pages WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SessionID != nil {
		query.WriteString(" AND session_id = ?")
		args = append(args, *filter.SessionID)
	}
	if filter.WebsiteID != nil {
		query.WriteString(" AND website_id = ?")
		args = append(args, *filter.WebsiteID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url_hash = ?")
		args = append(args, hashString(*filter.URL))
	}

	switch filter.SortBy {
	case termsift.SortByWordCount:
		query.WriteString(" ORDER BY word_count DESC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*termsift.PageRecord
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// PageExists reports whether a page with this URL has been stored by any
// session.
func (s *PageService) PageExists(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pages WHERE url_hash = ?)",
		hashString(url)).Scan(&exists)
	return exists, err
}

// CountPagesBySession returns the number of pages stored for a session.
func (s *PageService) CountPagesBySession(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pages WHERE session_id = ?",
		sessionID).Scan(&count)
	return count, err
}

// DeletePagesBySession removes all pages for a session.
func (s *PageService) DeletePagesBySession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE session_id = ?", sessionID)
	return err
}

// scanPage reads one page row through the given scan function, then decodes
// the emphasis stats JSON and timestamps.
func scanPage(scan func(dest ...any) error) (*termsift.PageRecord, error) {
	var page termsift.PageRecord
	var metaDescription sql.NullString
	var stats, fetchedAt string

	if err := scan(&page.ID, &page.SessionID, &page.WebsiteID, &page.URL, &page.URLHash,
		&page.ContentHash, &page.Title, &metaDescription, &page.PlainText, &page.MainText,
		&page.RawHTML, &page.WordCount, &page.LinkCount, &stats, &fetchedAt); err != nil {
		return nil, err
	}

	if metaDescription.Valid {
		description := metaDescription.String
		page.MetaDescription = &description
	}

	if err := json.Unmarshal([]byte(stats), &page.EmphasisStats); err != nil {
		return nil, fmt.Errorf("failed to decode emphasis stats: %w", err)
	}

	var err error
	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &page, nil
}
