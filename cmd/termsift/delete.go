package main

import (
	"fmt"

	"github.com/termsift/termsift"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return termsift.Errorf(termsift.EINVALID, "use --force to confirm deletion")
	}

	session, err := deps.Sessions.FindSessionByID(deps.Ctx, c.Session)
	if err != nil {
		if termsift.ErrorCode(err) == termsift.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: session %q not found. Use 'termsift sessions' to see available sessions.\n", c.Session)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		}
		return err
	}

	count, err := deps.Pages.CountPagesBySession(deps.Ctx, session.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	if err := deps.Sessions.DeleteSession(deps.Ctx, session.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", termsift.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted session %s (%d pages)\n", session.ID, count)

	return nil
}
