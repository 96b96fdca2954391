package main

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/termsift/termsift"
)

// Run executes the query command.
func (c *QueryCmd) Run(deps *Dependencies) error {
	html, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	doc, err := htmlquery.Parse(strings.NewReader(html))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	nodes, err := htmlquery.QueryAll(doc, c.XPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid XPath %q: %v\n", c.XPath, err)
		return termsift.Errorf(termsift.EINVALID, "invalid XPath %q", c.XPath)
	}

	for _, node := range nodes {
		text := strings.TrimSpace(htmlquery.InnerText(node))
		if text == "" {
			continue
		}
		fmt.Fprintln(deps.Stdout, text)
	}

	return nil
}
