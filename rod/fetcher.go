// Package rod provides a browser-based implementation of termsift.Fetcher
// for fetching content from JavaScript-rendered sites.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/termsift/termsift"
)

// DefaultFetchTimeout bounds a single page fetch, navigation and render
// included.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements termsift.Fetcher at compile time.
var _ termsift.Fetcher = (*Fetcher)(nil)

// shadowDOMScript inlines open shadow roots as declarative shadow DOM
// templates so their content survives HTML serialization. Web-component
// navigation menus often hold the only links to deeper pages.
const shadowDOMScript = `() => {
	const inline = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				inline(el.shadowRoot);
				const tpl = document.createElement('template');
				tpl.setAttribute('shadowrootmode', 'open');
				tpl.innerHTML = el.shadowRoot.innerHTML;
				el.appendChild(tpl);
			}
		}
	};
	inline(document);
	return document.documentElement.outerHTML;
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// JavaScript is executed before serialization and open shadow roots are
// included in the returned HTML. The underlying browser is recycled
// periodically by a BrowserManager.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxPages int64
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserMaxPages sets how many pages the underlying browser serves
// before it is recycled. Defaults to DefaultMaxPages.
func WithBrowserMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", termsift.Errorf(termsift.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	// Bind the page to the fetch context so navigation and rendering
	// respect cancellation and the timeout.
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}

	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	html, err := renderedHTML(page)
	if err != nil {
		return "", err
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// renderedHTML serializes the page with open shadow roots inlined. Falls
// back to plain serialization when script evaluation fails.
func renderedHTML(page *rod.Page) (string, error) {
	obj, err := page.Eval(shadowDOMScript)
	if err != nil {
		return page.HTML()
	}
	return obj.Value.Str(), nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// Close releases browser resources. Close is safe to call multiple times,
// and any Fetch after Close fails with EINVALID.
func (f *Fetcher) Close() error {
	f.closed.Store(true)
	return f.manager.Close()
}
