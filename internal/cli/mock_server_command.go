package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker-client/internal/mockapi"
)

func (r *RootCommand) newMockServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve an in-memory tracker backend",
		Long: `Serve an in-memory tracker backend for local development. It is seeded
with a user, two projects, two tags, two tasks and two time entries
unless --empty is given. Data is lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			empty, _ := cmd.Flags().GetBool("empty")
			tokens, _ := cmd.Flags().GetStringSlice("token")

			server := mockapi.New(mockapi.Options{Tokens: tokens, Seed: !empty})
			fmt.Fprintf(cmd.OutOrStdout(), "Serving mock tracker API on http://%s/api\n", r.config.MockServer.Addr)
			return server.Run(r.config.MockServer.Addr)
		},
	}
	cmd.Flags().Bool("empty", false, "Start without fixture data")
	cmd.Flags().StringSlice("token", nil, "Accept only these tokens (repeatable); any request is accepted when unset")
	return cmd
}
