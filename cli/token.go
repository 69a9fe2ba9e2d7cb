package cli

import (
	"fmt"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/spf13/cobra"
)

func init() {
	core.RegisterCommand("token", func() *cobra.Command {
		return TokenCmd()
	})
}

func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token [workspace]",
		Short: "Retrieve an access token for a workspace",
		Long: `Log in with the stored machine identity and print the resulting
access token. Each invocation performs a fresh universal-auth login, so the
token is always usable for the API's full token lifetime.

Examples:
  # Get a token for the current workspace
  infisical token

  # Get a token for a specific workspace
  infisical token my-workspace

  # Use in scripts (get just the token value)
  export INFISICAL_TOKEN=$(infisical token)`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: GetWorkspaceValidArgsFunction(),
		Run: func(cmd *cobra.Command, args []string) {
			workspace := core.GetWorkspace()
			if len(args) > 0 {
				workspace = args[0]
			}

			if workspace == "" {
				workspace = sdk.CurrentContext().Workspace
			}

			if workspace == "" {
				err := fmt.Errorf("no workspace specified. Use 'infisical login <workspace>' to authenticate")
				core.PrintError("Token", err)
				core.ExitWithError(err)
			}

			credentials := sdk.LoadCredentials(workspace)
			if !credentials.IsValid() {
				err := fmt.Errorf("no valid credentials found for workspace '%s'. Please run 'infisical login %s'", workspace, workspace)
				core.PrintError("Token", err)
				core.ExitWithError(err)
			}

			c, err := sdk.NewClient(sdk.ClientConfig{
				BaseURL:     core.GetBaseURL(),
				Workspace:   workspace,
				Environment: core.GetEnvironment(),
				Credentials: credentials,
			})
			if err != nil {
				core.PrintError("Token", err)
				core.ExitWithError(err)
			}

			token, err := c.Token(cmd.Context())
			if err != nil {
				core.HandleClientError("Token", err)
			}

			// Output the token
			fmt.Println(token)
		},
	}

	return cmd
}
