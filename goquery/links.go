package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/termsift/termsift"
)

// extractLinks returns every anchor with a non-empty href, in document
// order. No deduplication and no scheme filtering happen here: mailto: and
// javascript: links are reported as-is, and repeated hrefs appear once per
// anchor. Deciding which links are worth following is the crawler's job,
// not the parser's.
func extractLinks(doc *goquery.Document, base *url.URL) []termsift.LinkInfo {
	var links []termsift.LinkInfo
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			// A single malformed href skips this anchor only.
			return
		}
		resolved := base.ResolveReference(ref)

		links = append(links, termsift.LinkInfo{
			URL:  resolved.String(),
			Text: strings.TrimSpace(sel.Text()),
			// Exact host comparison: subdomains are external. Scheme-only
			// links like mailto: have no host and land here as external.
			IsInternal: resolved.Host == base.Host,
			// Resolution starts at the anchor element itself so the set
			// always carries link_text.
			Emphasis: resolveEmphasis(sel.Get(0)),
		})
	})
	return links
}
