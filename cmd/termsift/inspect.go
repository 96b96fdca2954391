package main

import (
	"encoding/json"
	"fmt"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	html, err := readInput(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page := deps.Parser.Parse(html, c.URL)

	out, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode page: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}
