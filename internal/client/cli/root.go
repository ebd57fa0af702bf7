package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt suffix: "(email)" when logged in, "(syncing)"
// while the guard is busy.
func (a *App) getStatus() string {
	s := ""
	if u := a.store.State().Auth.User; u != nil && a.isLoggedIn() {
		s = u.Email
	}
	if a.guard != nil && a.guard.Syncing() {
		if s != "" {
			s += " "
		}
		s += "syncing"
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s
}

func (a *App) isLoggedIn() bool {
	return a.authService.Authenticated()
}

// Root restores a persisted session, if any, and runs the REPL.
func (a *App) Root(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to gophsync CLI (type 'help' for commands)")

	restored, err := a.authService.Restore(ctx)
	if err != nil {
		return err
	}
	if restored {
		fmt.Fprintln(a.out, "Session restored.")
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}
