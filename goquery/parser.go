// Package goquery implements HTML page parsing on top of
// github.com/PuerkitoBio/goquery and golang.org/x/net/html.
//
// The parser walks the filtered parse tree once per concern: non-content
// subtrees are removed first, then metadata, links, and text tokens are
// extracted from what remains. Each Parse call builds its own tree, so a
// single Parser is safe for concurrent use.
package goquery

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/termsift/termsift"
	"golang.org/x/net/html"
)

// Ensure Parser implements termsift.PageParser.
var _ termsift.PageParser = (*Parser)(nil)

// DefaultBackend is the parse-tree backend used when none is configured.
const DefaultBackend = "net/html"

// Parser extracts tokens, links, and metadata from raw HTML.
type Parser struct {
	backend string
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithBackend selects the parse-tree backend by name, e.g. "net/html".
func WithBackend(name string) Option {
	return func(p *Parser) { p.backend = name }
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a Parser. Unlike Parse, construction is strict: an
// unknown backend name returns EINVALID instead of being papered over.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		backend: DefaultBackend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	switch p.backend {
	case "net/html", "html":
	default:
		return nil, termsift.Errorf(termsift.EINVALID, "unknown parser backend %q", p.backend)
	}
	return p, nil
}

// Parse extracts everything the page offers. It never returns an error: any
// failure mid-extraction degrades to a page with only the URL set, so one
// broken page cannot take down a crawl.
func (p *Parser) Parse(rawHTML string, pageURL string) (page *termsift.ParsedPage) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("page parse panicked", "url", pageURL, "panic", r)
			page = degradedPage(pageURL)
		}
	}()

	base, err := url.Parse(pageURL)
	if err != nil {
		p.logger.Error("page parse failed", "url", pageURL, "error", err)
		return degradedPage(pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		p.logger.Error("page parse failed", "url", pageURL, "error", err)
		return degradedPage(pageURL)
	}

	removeNonContent(doc)

	title := extractTitle(doc)
	metaDescription := extractMetaDescription(doc)
	altTexts := extractImageAltTexts(doc)
	links := extractLinks(doc, base)
	tokens, plainText := extractTokens(doc)

	return termsift.BuildParsedPage(pageURL, title, metaDescription, plainText, tokens, links, altTexts)
}

// degradedPage is the no-content result returned when parsing cannot
// proceed. The URL is preserved so the failure stays attributable.
func degradedPage(pageURL string) *termsift.ParsedPage {
	return termsift.BuildParsedPage(pageURL, "", nil, "", nil, nil, nil)
}

// removeNonContent strips subtrees that never contribute visible text:
// script, style, and noscript elements, plus HTML comments. Removal happens
// before any extraction so every downstream pass sees the same tree.
func removeNonContent(doc *goquery.Document) {
	doc.Find("script, style, noscript").Remove()
	for _, root := range doc.Nodes {
		removeComments(root)
	}
}

// removeComments detaches comment nodes. Comments are not elements, so CSS
// selectors cannot reach them; this walks the tree directly.
func removeComments(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		if child.Type == html.CommentNode {
			n.RemoveChild(child)
		} else {
			removeComments(child)
		}
		child = next
	}
}
