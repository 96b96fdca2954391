package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/termsift/termsift"
	"github.com/termsift/termsift/crawl"
	"github.com/termsift/termsift/goquery"
	"github.com/termsift/termsift/htmltomarkdown"
	termhttp "github.com/termsift/termsift/http"
	"github.com/termsift/termsift/readability"
	"github.com/termsift/termsift/rod"
	tslog "github.com/termsift/termsift/slog"
	"github.com/termsift/termsift/sqlite"
	"github.com/termsift/termsift/trafilatura"
)

func main() {
	ctx := context.Background()

	// Load .env before reading TERMSIFT_DB in NewMain.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Input stream for commands that accept "-" as a file argument.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	WebsiteService termsift.WebsiteService
	SessionService termsift.SessionService
	PageService    termsift.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("termsift"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'termsift --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database for commands that read or write stored state. Inspect
	// and query operate on local files only.
	if cmd != "inspect" && cmd != "query" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TERMSIFT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		// Wire core services into dependencies
		m.WebsiteService = sqlite.NewWebsiteService(m.DB)
		m.SessionService = sqlite.NewSessionService(m.DB)
		m.PageService = sqlite.NewPageService(m.DB)
		deps.DB = m.DB
		deps.Websites = m.WebsiteService
		deps.Sessions = m.SessionService
		deps.Pages = m.PageService
		deps.Sitemaps = termhttp.NewSitemapService(nil)
		if logger != nil {
			deps.Sitemaps = tslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}
	}

	// Wire command-specific dependencies based on command
	if cmd == "crawl" && !cli.Crawl.Preview {
		var fetcher termsift.Fetcher
		if cli.Crawl.Render {
			rodFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = termhttp.NewFetcher()
		}
		defer fetcher.Close()
		if logger != nil {
			fetcher = tslog.NewLoggingFetcher(fetcher, logger)
		}

		pageParser, err := newPageParser(logger)
		if err != nil {
			return fmt.Errorf("failed to create page parser: %w", err)
		}

		extractor, err := newExtractor(cli.Crawl.Extractor)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: available extractors are trafilatura and readability")
			return err
		}

		deps.Crawler = &crawl.Crawler{
			Sitemaps:    deps.Sitemaps,
			Fetcher:     fetcher,
			Parser:      pageParser,
			Extractor:   extractor,
			Pages:       m.PageService,
			RateLimiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
			Concurrency: cli.Crawl.Concurrency,
			Logger:      logger,
		}
	}

	if cmd == "inspect" {
		pageParser, err := newPageParser(logger)
		if err != nil {
			return fmt.Errorf("failed to create page parser: %w", err)
		}
		deps.Parser = pageParser
	}

	if cmd == "export" {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	return kongCtx.Run(deps)
}

// newPageParser builds the HTML parser, adding debug instrumentation when a
// logger is set.
func newPageParser(logger *slog.Logger) (termsift.PageParser, error) {
	var opts []goquery.Option
	if logger != nil {
		opts = append(opts, goquery.WithLogger(logger))
	}
	parser, err := goquery.NewParser(opts...)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		return tslog.NewLoggingParser(parser, logger), nil
	}
	return parser, nil
}

// newExtractor returns the content extractor registered under name.
func newExtractor(name string) (termsift.ContentExtractor, error) {
	switch name {
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, termsift.Errorf(termsift.EINVALID, "unknown extractor %q", name)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("TERMSIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "termsift.db"
	}
	dir := filepath.Join(home, ".termsift")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "termsift.db")
}
