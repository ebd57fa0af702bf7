package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/common"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText   = GetSimpleText
	getOptionalText = GetOptionalText
	getPassword     = GetPassword
)

// Register prompts for email, name and password and creates an account. It
// does not log in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, models.RegisterRequest{Email: email, Password: string(password), Name: name})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s. You can log in now.\n", u.Email)
	return nil
}

// Login prompts for credentials and logs in. The sync guard picks up the new
// session in the background.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", displayName(*u))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Reset logs out and deletes the persisted state.
func (a *App) Reset(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	if err := a.envelope.Purge(ctx); err != nil {
		return err
	}
	// slots written by older versions or other tools go too
	if err := a.slots.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Local state wiped.")
	return nil
}

func displayName(u models.User) string {
	if u.Name != "" {
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	}
	return u.Email
}
