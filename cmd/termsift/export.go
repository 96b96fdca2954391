package main

import (
	"fmt"
	"path/filepath"

	"github.com/termsift/termsift"
	"github.com/termsift/termsift/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var ext string
	switch c.Format {
	case "markdown":
		ext = ".md"
	case "text":
		ext = ".txt"
	default:
		fmt.Fprintf(deps.Stderr, "error: unknown format %q (use markdown or text)\n", c.Format)
		return termsift.Errorf(termsift.EINVALID, "unknown format %q", c.Format)
	}

	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.Session)
	if err != nil {
		if termsift.ErrorCode(err) == termsift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: session %q not found. Use 'termsift sessions' to see available sessions.\n", c.Session)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		}
		return err
	}

	website, err := deps.Websites.FindWebsiteByID(deps.Ctx, session.WebsiteID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
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

	var store termsift.ExportStore = fs.NewExportStore(c.Dir, website.Domain, fs.WithExtension(ext))

	exported := 0
	failed := 0
	for _, page := range pages {
		content := page.PlainText
		if c.Format == "markdown" {
			converted, err := deps.Converter.Convert(page.RawHTML)
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", page.URL, err)
				continue
			}
			content = converted
		}

		err := store.Save(deps.Ctx, &termsift.ExportedPage{
			URL:       page.URL,
			Title:     page.Title,
			FetchedAt: page.FetchedAt,
			Content:   content,
		})
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
			return err
		}
		exported++
	}

	if exported == 0 {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error: no pages could be exported\n")
		return termsift.Errorf(termsift.EINTERNAL, "no pages could be exported")
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", exported, filepath.Join(c.Dir, website.Domain))
	if failed > 0 {
		fmt.Fprintf(deps.Stdout, "  Failed to convert %d pages\n", failed)
	}

	return nil
}
