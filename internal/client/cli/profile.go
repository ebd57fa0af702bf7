package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophsync/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Load(ctx)
	if err != nil {
		return err
	}
	printProfile(a.out, *p)
	return nil
}

// UpdateProfile prompts for each editable field; empty answers keep the
// current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	var patch models.ProfilePatch
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Name", &patch.Name},
		{"Image URL", &patch.Image},
		{"Bio", &patch.Bio},
		{"Phone", &patch.Phone},
		{"Address", &patch.Address},
	}
	for _, f := range fields {
		v, err := getOptionalText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	p, err := a.profileService.Update(ctx, patch)
	if err != nil {
		return err
	}
	printProfile(a.out, *p)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	users, err := a.profileService.Users(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role)
	}
	return tw.Flush()
}

func (a *App) User(ctx context.Context, id string) error {
	u, err := a.profileService.User(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s  %s  role=%s provider=%s\n", u.ID, displayName(*u), u.Role, u.Provider)
	return nil
}

func printProfile(w io.Writer, p models.Profile) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("ID", p.ID)
	row("Email", p.Email)
	row("Name", p.Name)
	row("Image", p.Image)
	row("Role", p.Role)
	row("Bio", p.Bio)
	row("Phone", p.Phone)
	row("Address", p.Address)
	row("Last sync", p.LastSync)
	_ = tw.Flush()
}
