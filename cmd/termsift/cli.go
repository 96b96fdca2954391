package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/termsift/termsift"
	"github.com/termsift/termsift/crawl"
	"github.com/termsift/termsift/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Stdin     io.Reader
	DB        *sqlite.DB
	Websites  termsift.WebsiteService
	Sessions  termsift.SessionService
	Pages     termsift.PageService
	Sitemaps  termsift.SitemapService
	Parser    termsift.PageParser
	Converter termsift.Converter
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log pipeline activity to stderr"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl a website into the page database"`
	Sessions SessionsCmd `cmd:"" help:"List crawl sessions"`
	Pages    PagesCmd    `cmd:"" help:"List pages stored by a session"`
	Export   ExportCmd   `cmd:"" help:"Export a session's pages to files"`
	Inspect  InspectCmd  `cmd:"" help:"Parse an HTML file and print the result as JSON"`
	Query    QueryCmd    `cmd:"" help:"Run an XPath query against an HTML file"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a session and its pages"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Name        string   `arg:"" help:"Project name"`
	URL         string   `arg:"" help:"Site URL to crawl"`
	Preview     bool     `short:"p" help:"Show discovered URLs without crawling"`
	Recreate    bool     `help:"Delete previous sessions for this site first"`
	MaxPages    int      `help:"Stop after this many pages (0 = no limit)"`
	MaxDepth    int      `help:"Link depth limit for recursive crawling (0 = no limit)"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `default:"1" help:"Requests per second per domain (0 = unlimited)"`
	Render      bool     `help:"Render pages in a headless browser before parsing"`
	Extractor   string   `default:"trafilatura" help:"Main content extractor (trafilatura or readability)"`
	Filter      []string `short:"F" name:"filter" help:"Include URLs matching regex (repeatable)"`
	Exclude     []string `short:"x" help:"Exclude URLs matching regex (repeatable)"`
}

// SessionsCmd is the "sessions" subcommand.
type SessionsCmd struct{}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Session string `arg:"" help:"Session ID"`
	Full    bool   `help:"Show full page text"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Session string `arg:"" help:"Session ID"`
	Dir     string `short:"d" default:"." help:"Output directory"`
	Format  string `default:"markdown" help:"Output format (markdown or text)"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File string `arg:"" help:"HTML file to parse (- for stdin)"`
	URL  string `default:"file:///inspect" help:"Base URL for resolving links"`
}

// QueryCmd is the "query" subcommand.
type QueryCmd struct {
	File  string `arg:"" help:"HTML file to query (- for stdin)"`
	XPath string `arg:"" help:"XPath expression"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Session string `arg:"" help:"Session ID"`
	Force   bool   `help:"Confirm deletion"`
}

// readInput returns the contents of path, reading stdin when path is "-".
func readInput(deps *Dependencies, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
