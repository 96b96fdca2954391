package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/termsift/termsift"
	"github.com/termsift/termsift/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	// Compile filters early so pattern errors surface before any crawling
	urlFilter, err := termsift.CompileURLFilter(c.Filter, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		fmt.Fprintf(deps.Stderr, "Example: --filter '/docs/' --filter '\\.html$'\n")
		return err
	}

	// Preview mode: show URLs without creating a session
	if c.Preview {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
			return err
		}
		if len(urls) == 0 {
			fmt.Fprintln(deps.Stderr, "No sitemap URLs found. A crawl will follow links from the root URL instead.")
			return nil
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	rootURL, err := url.Parse(c.URL)
	if err != nil || rootURL.Host == "" {
		fmt.Fprintf(deps.Stderr, "error: URL must be absolute, e.g. https://example.com/docs\n")
		return termsift.Errorf(termsift.EINVALID, "invalid URL %q", c.URL)
	}

	// Each database belongs to one named project; refuse mixed use.
	if deps.DB != nil {
		name, err := deps.DB.GetMeta(deps.Ctx, "name")
		if err != nil {
			return err
		}
		switch name {
		case "":
			if err := deps.DB.SetMeta(deps.Ctx, "name", c.Name); err != nil {
				return err
			}
			if err := deps.DB.SetMeta(deps.Ctx, "created_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
				return err
			}
		case c.Name:
		default:
			fmt.Fprintf(deps.Stderr, "error: database belongs to project %q, not %q. Set TERMSIFT_DB to use a different database.\n", name, c.Name)
			return termsift.Errorf(termsift.EINVALID, "database belongs to project %q", name)
		}
	}

	website, err := deps.Websites.GetOrCreateWebsite(deps.Ctx, rootURL.Host, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	// Recreate mode: drop this site's previous sessions and their pages
	if c.Recreate {
		existing, err := deps.Sessions.FindSessions(deps.Ctx, termsift.SessionFilter{WebsiteID: &website.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
			return err
		}
		for _, s := range existing {
			if err := deps.Sessions.DeleteSession(deps.Ctx, s.ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
				return err
			}
		}
	}

	session := &termsift.CrawlSession{
		WebsiteID: website.ID,
		RootURL:   c.URL,
		Parameters: termsift.CrawlParameters{
			MaxPages:    c.MaxPages,
			MaxDepth:    c.MaxDepth,
			Concurrency: c.Concurrency,
			RPS:         c.RPS,
			Render:      c.Render,
			Extractor:   c.Extractor,
			Include:     c.Filter,
			Exclude:     c.Exclude,
		},
		Status: termsift.SessionRunning,
	}

	if err := deps.Sessions.CreateSession(deps.Ctx, session); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (session %s)\n", c.URL, session.ID)

	// Crawl pages if Crawler is provided
	if deps.Crawler != nil {
		// Apply user-specified concurrency
		if c.Concurrency > 0 {
			deps.Crawler.Concurrency = c.Concurrency
		}

		// Recursive crawling has no URL total, so count lines locally.
		processed := 0
		lineOpen := false
		progress := func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressStarted:
				fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
			case crawl.ProgressCompleted, crawl.ProgressSkipped:
				processed++
				if event.Total > 0 {
					fmt.Fprintf(deps.Stdout, "\r  [%d/%d] %s", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
				} else {
					fmt.Fprintf(deps.Stdout, "\r  [%d] %s", processed, crawl.TruncateURL(event.URL, 60))
				}
				lineOpen = true
			case crawl.ProgressFailed:
				if lineOpen {
					fmt.Fprintln(deps.Stdout)
					lineOpen = false
				}
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
			case crawl.ProgressFinished:
				if lineOpen {
					fmt.Fprintln(deps.Stdout)
				}
			}
		}

		result, err := deps.Crawler.CrawlSession(deps.Ctx, session, progress)
		if err != nil {
			_ = deps.Sessions.CompleteSession(deps.Ctx, session.ID, termsift.SessionFailed, 0, 0)
			fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
			return err
		}

		if err := deps.Sessions.CompleteSession(deps.Ctx, session.ID, termsift.SessionCompleted, result.Saved, result.Failed); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
			return err
		}

		fmt.Fprintf(deps.Stdout, "  Saved %d pages (%s, %s)\n",
			result.Saved, crawl.FormatBytes(result.Bytes), crawl.FormatWords(result.Words))
		if result.Skipped > 0 {
			fmt.Fprintf(deps.Stdout, "  Skipped %d already stored pages\n", result.Skipped)
		}
		if result.Failed > 0 {
			fmt.Fprintf(deps.Stdout, "  Failed %d pages\n", result.Failed)
		}
	}

	return nil
}
