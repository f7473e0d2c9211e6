package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracker-client/internal/api"
	"tracker-client/internal/errors"
)

func (r *RootCommand) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store an API token",
		Long: `Store the API token used for every request and verify it against the
service. A token the service rejects is not kept.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("log in", login),
	}
}

func login(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(args[0])
	if err := app.Auth.Login(ctx, token); err != nil {
		return err
	}

	user, err := api.CurrentUser(ctx, app.client)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeUnauthorized) {
			app.Auth.Reset()
			return errors.NewInvalidInputError("token", "", "the service rejected this token")
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Logged in as %s", user.Username)))
	return nil
}

func (r *RootCommand) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		Args:  cobra.NoArgs,
		RunE: r.run("log out", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func (r *RootCommand) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE:  r.run("show current user", whoami),
	}
}

func whoami(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	if !app.Auth.IsAuthenticated() {
		return errors.NewInvalidInputError("token", "", "not logged in, run `trk login <token>` first")
	}
	if _, err := app.Auth.FetchCurrentUser(ctx).Wait(); err != nil {
		return err
	}
	user := app.Auth.CurrentUser()
	if user == nil {
		return fmt.Errorf("could not load your profile")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(user.Username))
	if user.Email != "" {
		fmt.Fprintln(out, mutedStyle.Render(user.Email))
	}
	return nil
}
