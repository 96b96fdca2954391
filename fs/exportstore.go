// Package fs provides file-based storage for exported pages.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/termsift/termsift"
)

// Ensure ExportStore implements termsift.ExportStore at compile time.
var _ termsift.ExportStore = (*ExportStore)(nil)

// ExportStore implements termsift.ExportStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type ExportStore struct {
	baseDir string
	name    string
	ext     string
}

// Option configures an ExportStore.
type Option func(*ExportStore)

// WithExtension sets the file extension for exported pages.
// Defaults to ".md" if not specified.
func WithExtension(ext string) Option {
	return func(s *ExportStore) {
		s.ext = ext
	}
}

// NewExportStore creates a new ExportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string, opts ...Option) *ExportStore {
	s := &ExportStore{
		baseDir: baseDir,
		name:    name,
		ext:     ".md",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save stages one exported page under the temp directory.
func (s *ExportStore) Save(ctx context.Context, page *termsift.ExportedPage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL, s.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// Commit atomically replaces the previous export with the staged one.
func (s *ExportStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the staged export.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// URLToPath converts a page URL to a relative file path with the given
// extension. Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Dot segments would let a crafted URL escape the export directory.
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return "", termsift.Errorf(termsift.EINVALID, "path traversal in URL %q", rawURL)
		}
	}

	// Root or trailing slash becomes an index file.
	if path == "" || path == "/" {
		return "index" + ext, nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index" + ext, nil
	}

	return path + ext, nil
}

// FormatPage renders a page as YAML frontmatter followed by its content.
func FormatPage(page *termsift.ExportedPage) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(page.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n")
	b.WriteString(page.Content)
	return b.String()
}
