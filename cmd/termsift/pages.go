package main

import (
	"fmt"

	"github.com/termsift/termsift"
)

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.Session)
	if err != nil {
		if termsift.ErrorCode(err) == termsift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: session %q not found. Use 'termsift sessions' to see available sessions.\n", c.Session)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		}
		return err
	}

	pages, err := deps.Pages.FindPages(deps.Ctx, termsift.PageFilter{
		SessionID: &session.ID,
		SortBy:    termsift.SortByFetchedAt,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stderr, "error: session %q has no pages.\n", c.Session)
		return termsift.Errorf(termsift.ENOTFOUND, "session %q has no pages", c.Session)
	}

	if c.Full {
		// Print full page text, one block per page
		for _, page := range pages {
			fmt.Fprintf(deps.Stdout, "=== %s\n%s\n\n", page.URL, page.PlainText)
		}
		return nil
	}

	// Print summary listing
	fmt.Fprintf(deps.Stdout, "Pages for session %s (%d total):\n\n", c.Session, len(pages))
	for i, page := range pages {
		title := page.Title
		if title == "" {
			title = page.URL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s (%d words, %d links)\n",
			i+1, title, page.URL, page.WordCount, page.LinkCount)
	}

	return nil
}
