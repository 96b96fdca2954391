// Package crawl provides website crawling orchestration.
// It coordinates URL discovery, fetching, parsing, and storage of
// page records for a crawl session.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/termsift/termsift"
)

// Crawler orchestrates the crawling of websites.
type Crawler struct {
	Sitemaps termsift.SitemapService
	Fetcher  termsift.Fetcher
	Parser   termsift.PageParser
	Pages    termsift.PageService

	// Extractor, when set, produces the stored main text alongside the
	// full parse. Nil leaves MainText empty.
	Extractor termsift.ContentExtractor

	RateLimiter termsift.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
	Words   int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	position int
	url      string
	page     *termsift.ParsedPage
	mainText string
	rawHTML  string
	skipped  bool
	err      error
}

// CrawlSession crawls all pages for a session and saves them as page records.
// URLs come from the site's sitemap when one exists; otherwise the crawler
// falls back to following internal links from the session's root URL.
// The progress callback, if provided, receives events as crawling proceeds.
func (c *Crawler) CrawlSession(ctx context.Context, session *termsift.CrawlSession, progress ProgressFunc) (*Result, error) {
	params := session.Parameters

	urlFilter, err := termsift.CompileURLFilter(params.Include, params.Exclude)
	if err != nil {
		return nil, err
	}

	// Discover URLs from sitemap
	urls, err := c.Sitemaps.DiscoverURLs(ctx, session.RootURL, urlFilter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	if len(urls) == 0 {
		// Fall back to recursive crawling if a rate limiter is configured
		if c.RateLimiter != nil {
			return c.recursiveCrawl(ctx, session, urlFilter, progress)
		}
		return &Result{}, nil
	}

	if params.MaxPages > 0 && len(urls) > params.MaxPages {
		urls = urls[:params.MaxPages]
	}

	// Set up concurrency
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	// Channel for collecting results
	resultCh := make(chan crawlResult, len(urls))

	// Progress tracking
	var completed atomic.Int64
	total := len(urls)

	// Notify start
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	// Start workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			g.Go(func() error {
				resultCh <- c.processURL(gctx, i, pageURL)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]crawlResult, len(urls))
	var failedCount, skippedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		switch {
		case result.err != nil:
			failedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
		case result.skipped:
			skippedCount++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressSkipped,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
				})
			}
		default:
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
				})
			}
		}
	}

	// Save page records and accumulate stats
	var savedCount int
	var totalBytes int
	var totalWords int

	for _, result := range results {
		if result.err != nil || result.skipped {
			continue
		}

		record := buildRecord(session, result.url, result.page, result.mainText, result.rawHTML)

		if err := c.Pages.CreatePage(ctx, record); err != nil {
			// A duplicate URL in the sitemap loses the race here.
			if termsift.ErrorCode(err) == termsift.ECONFLICT {
				skippedCount++
				continue
			}
			failedCount++
			continue
		}

		savedCount++
		totalBytes += len(result.rawHTML)
		totalWords += result.page.WordCount
	}

	// Notify finished
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Saved:   savedCount,
		Failed:  failedCount,
		Skipped: skippedCount,
		Bytes:   totalBytes,
		Words:   totalWords,
	}, nil
}

// processURL fetches and parses a single URL.
func (c *Crawler) processURL(ctx context.Context, position int, pageURL string) crawlResult {
	result := crawlResult{
		position: position,
		url:      pageURL,
	}

	// Pages stored by an earlier session keep their records; skip the fetch.
	exists, err := c.Pages.PageExists(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}
	if exists {
		result.skipped = true
		return result
	}

	// Rate limit
	if c.RateLimiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = err
			return result
		}
		if err := c.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	// Fetch with retry
	html, err := FetchWithRetry(ctx, c.Fetcher, pageURL, c.RetryDelays, c.Logger)
	if err != nil {
		result.err = err
		return result
	}

	// Parse never fails; malformed input yields a degraded page.
	result.page = c.Parser.Parse(html, pageURL)
	result.mainText = c.extractMainText(html, pageURL)
	result.rawHTML = html

	return result
}

// Frontier configuration for recursive crawling.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.01
	// maxRecursiveCrawlURLs limits the number of URLs processed to prevent runaway crawls.
	maxRecursiveCrawlURLs = 1000
)

// recursiveCrawl performs recursive link-following when sitemap discovery
// yields nothing. It starts from the session's root URL and follows internal
// links within the root's path prefix, shallowest first.
//
// Note: URLs are processed sequentially (not concurrently) to simplify rate
// limiting and frontier management. For sites requiring high throughput, use
// sitemap-based crawling.
func (c *Crawler) recursiveCrawl(ctx context.Context, session *termsift.CrawlSession, urlFilter *termsift.URLFilter, progress ProgressFunc) (*Result, error) {
	// Parse root URL to get base path for scope limiting
	rootURL, err := url.Parse(session.RootURL)
	if err != nil {
		return nil, fmt.Errorf("invalid root URL: %w", err)
	}
	pathPrefix := rootURL.Path

	maxPages := session.Parameters.MaxPages
	if maxPages <= 0 || maxPages > maxRecursiveCrawlURLs {
		maxPages = maxRecursiveCrawlURLs
	}
	maxDepth := session.Parameters.MaxDepth

	// Create frontier and seed with the root URL
	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(termsift.DiscoveredLink{URL: session.RootURL})

	var result Result
	processedCount := 0

	// Process URLs from frontier
	for {
		link, ok := frontier.Pop()
		if !ok {
			break // Frontier empty
		}

		if processedCount >= maxPages {
			break
		}
		processedCount++

		// Check context cancellation
		if ctx.Err() != nil {
			break
		}

		// Rate limit
		linkURL, err := url.Parse(link.URL)
		if err != nil {
			result.Failed++
			continue
		}
		if err := c.RateLimiter.Wait(ctx, linkURL.Host); err != nil {
			break // Context canceled
		}

		// Fetch with retry
		html, err := FetchWithRetry(ctx, c.Fetcher, link.URL, c.RetryDelays, c.Logger)
		if err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:  ProgressFailed,
					URL:   link.URL,
					Error: err,
				})
			}
			continue
		}

		page := c.Parser.Parse(html, link.URL)

		// Feed internal links to the frontier
		for _, pageLink := range page.Links {
			if !pageLink.IsInternal {
				continue
			}
			// Check scope: must be same host and within path prefix
			discoveredURL, err := url.Parse(pageLink.URL)
			if err != nil {
				continue
			}
			if discoveredURL.Host != rootURL.Host {
				continue
			}
			if !strings.HasPrefix(discoveredURL.Path, pathPrefix) {
				continue
			}
			// Apply URL filter if configured
			if !urlFilter.Match(pageLink.URL) {
				continue
			}
			depth := link.Depth + 1
			if maxDepth > 0 && depth > maxDepth {
				continue
			}
			frontier.Push(termsift.DiscoveredLink{
				URL:   pageLink.URL,
				Depth: depth,
				Via:   link.URL,
			})
		}

		// Save page record
		record := buildRecord(session, link.URL, page, c.extractMainText(html, link.URL), html)

		if err := c.Pages.CreatePage(ctx, record); err != nil {
			// Already stored by an earlier session; the page was still
			// fetched so its links could feed the frontier.
			if termsift.ErrorCode(err) == termsift.ECONFLICT {
				result.Skipped++
				if progress != nil {
					progress(ProgressEvent{
						Type: ProgressSkipped,
						URL:  link.URL,
					})
				}
				continue
			}
			result.Failed++
			continue
		}

		result.Saved++
		result.Bytes += len(html)
		result.Words += page.WordCount

		if progress != nil {
			progress(ProgressEvent{
				Type: ProgressCompleted,
				URL:  link.URL,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type: ProgressFinished,
		})
	}

	return &result, nil
}

// extractMainText runs the optional content extractor. Extraction failure
// leaves the main text empty; the page record still stores the full parse.
func (c *Crawler) extractMainText(html, pageURL string) string {
	if c.Extractor == nil {
		return ""
	}
	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		c.logger().Warn("main content extraction failed", "url", pageURL, "err", err)
		return ""
	}
	return extracted.ContentText
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// buildRecord projects a parse result onto a page record for storage.
func buildRecord(session *termsift.CrawlSession, pageURL string, page *termsift.ParsedPage, mainText, rawHTML string) *termsift.PageRecord {
	return &termsift.PageRecord{
		SessionID:       session.ID,
		WebsiteID:       session.WebsiteID,
		URL:             pageURL,
		Title:           page.Title,
		MetaDescription: page.MetaDescription,
		PlainText:       page.PlainText,
		MainText:        mainText,
		RawHTML:         rawHTML,
		WordCount:       page.WordCount,
		LinkCount:       len(page.Links),
		EmphasisStats:   page.EmphasisStats,
	}
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatWords formats a word count in human-readable form.
func FormatWords(words int) string {
	if words < 1000 {
		return fmt.Sprintf("%d words", words)
	}
	return fmt.Sprintf("%.1fk words", float64(words)/1000)
}
