package slog

import (
	"log/slog"
	"time"

	"github.com/termsift/termsift"
)

// Ensure LoggingParser implements termsift.PageParser.
var _ termsift.PageParser = (*LoggingParser)(nil)

// LoggingParser wraps a PageParser with debug logging.
type LoggingParser struct {
	next   termsift.PageParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next termsift.PageParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the extraction outcome.
// Parse never fails, so the log line carries counts instead of an error.
func (p *LoggingParser) Parse(html string, pageURL string) (page *termsift.ParsedPage) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"url", pageURL,
			"tokens", page.WordCount,
			"links", len(page.Links),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return p.next.Parse(html, pageURL)
}
