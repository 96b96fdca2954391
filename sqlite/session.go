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
var _ termsift.SessionService = (*SessionService)(nil)

// SessionService implements termsift.SessionService using SQLite.
type SessionService struct {
	db *DB
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *DB) *SessionService {
	return &SessionService{db: db}
}

// CreateSession creates a new session in the running state.
func (s *SessionService) CreateSession(ctx context.Context, session *termsift.CrawlSession) error {
	if err := session.Validate(); err != nil {
		return err
	}

	session.ID = uuid.New().String()
	session.Status = termsift.SessionRunning
	session.StartedAt = time.Now().UTC()
	session.CompletedAt = time.Time{}

	params, err := json.Marshal(session.Parameters)
	if err != nil {
		return fmt.Errorf("failed to encode session parameters: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO crawl_sessions (id, website_id, root_url, parameters, status, pages_saved, pages_failed, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.WebsiteID, session.RootURL, string(params), session.Status,
		session.PagesSaved, session.PagesFailed,
		session.StartedAt.Format(time.RFC3339), timeArg(session.CompletedAt))

	return err
}

// FindSessionByID retrieves a session by ID.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*termsift.CrawlSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, website_id, root_url, parameters, status, pages_saved, pages_failed, started_at, completed_at
		FROM crawl_sessions
		WHERE id = ?
	`, id)

	session, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, termsift.Errorf(termsift.ENOTFOUND, "session not found")
	}
	return session, err
}

// FindSessions retrieves sessions matching the filter, newest first.
func (s *SessionService) FindSessions(ctx context.Context, filter termsift.SessionFilter) ([]*termsift.CrawlSession, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, website_id, root_url, parameters, status, pages_saved, pages_failed, started_at, completed_at FROM crawl_sessions WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.WebsiteID != nil {
		query.WriteString(" AND website_id = ?")
		args = append(args, *filter.WebsiteID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*termsift.CrawlSession
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// CompleteSession transitions a session out of the running state.
func (s *SessionService) CompleteSession(ctx context.Context, id string, status string, saved, failed int) error {
	if status != termsift.SessionCompleted && status != termsift.SessionFailed {
		return termsift.Errorf(termsift.EINVALID, "invalid completion status %q", status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE crawl_sessions
		SET status = ?, pages_saved = ?, pages_failed = ?, completed_at = ?
		WHERE id = ?
	`, status, saved, failed, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return termsift.Errorf(termsift.ENOTFOUND, "session not found")
	}

	return nil
}

// DeleteSession permanently removes a session. Pages cascade via the
// foreign key.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM crawl_sessions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return termsift.Errorf(termsift.ENOTFOUND, "session not found")
	}

	return nil
}

// scanSession reads one session row through the given scan function, then
// decodes the parameters JSON and timestamps.
func scanSession(scan func(dest ...any) error) (*termsift.CrawlSession, error) {
	var session termsift.CrawlSession
	var params, startedAt string
	var completedAt sql.NullString

	if err := scan(&session.ID, &session.WebsiteID, &session.RootURL, &params, &session.Status,
		&session.PagesSaved, &session.PagesFailed, &startedAt, &completedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(params), &session.Parameters); err != nil {
		return nil, fmt.Errorf("failed to decode session parameters: %w", err)
	}

	var err error
	if session.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		if session.CompletedAt, err = parseRFC3339(completedAt.String, "completed_at"); err != nil {
			return nil, err
		}
	}

	return &session, nil
}
