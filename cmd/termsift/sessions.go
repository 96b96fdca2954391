package main

import (
	"fmt"

	"github.com/termsift/termsift"
)

// Run executes the sessions command.
func (c *SessionsCmd) Run(deps *Dependencies) error {
	sessions, err := deps.Sessions.FindSessions(deps.Ctx, termsift.SessionFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(deps.Stdout, "No sessions found. Use 'termsift crawl' to create one.")
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(deps.Stdout, "%s  %-9s  %s  (%d saved, %d failed)  %s\n",
			s.ID, s.Status, s.RootURL, s.PagesSaved, s.PagesFailed,
			s.StartedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
