package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTitle returns the trimmed text of the first <title> element, or ""
// when the document has none.
func extractTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractMetaDescription returns the trimmed content of the first
// <meta name="description"> element. It returns nil when no such element
// exists or its content attribute is missing or empty, so callers can tell
// "no description" apart from an empty one. Only the name attribute is
// matched: og:description and other property-based variants do not count.
func extractMetaDescription(doc *goquery.Document) *string {
	sel := doc.Find(`meta[name="description"]`).First()
	if sel.Length() == 0 {
		return nil
	}
	content, ok := sel.Attr("content")
	if !ok || content == "" {
		return nil
	}
	description := strings.TrimSpace(content)
	return &description
}

// extractImageAltTexts returns the trimmed alt attributes of all images in
// document order. Images without an alt, or with a whitespace-only one, are
// skipped.
func extractImageAltTexts(doc *goquery.Document) []string {
	var alts []string
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if alt == "" {
			return
		}
		alts = append(alts, alt)
	})
	return alts
}
