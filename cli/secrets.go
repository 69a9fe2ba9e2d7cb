package cli

import (
	"fmt"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/spf13/cobra"
)

func init() {
	core.RegisterCommand("secrets", func() *cobra.Command {
		return SecretsCmd()
	})
}

func SecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secrets",
		Aliases: []string{"sec"},
		Short:   "List all secrets of the current workspace and environment",
		Long: `Fetch every secret of the current workspace and environment and
render them as a table. Use -o json|yaml|pretty for other formats, or
'infisical export' when the output is meant for files and pipes.`,
		Example: `  # List secrets of the current workspace/environment
  infisical secrets

  # List secrets of another environment
  infisical secrets -e staging

  # JSON output
  infisical secrets -o json`,
		Run: func(cmd *cobra.Command, args []string) {
			c := requireClient("Secrets")
			values, err := c.GetAllSecrets(cmd.Context(), core.GetEnvironment())
			if err != nil {
				core.HandleClientError("Secrets", err)
			}
			core.Output(core.RowsFromMap(values), core.GetOutputFormat())
		},
	}
	cmd.AddCommand(SecretsGetCmd())
	return cmd
}

func SecretsGetCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get a single secret by name",
		Example: `  # Show one secret
  infisical secrets get DATABASE_URL

  # Raw value only, for scripts
  DATABASE_URL=$(infisical secrets get DATABASE_URL --plain)`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: GetSecretValidArgsFunction(),
		Run: func(cmd *cobra.Command, args []string) {
			c := requireClient("Secret")
			value, err := c.GetSecret(cmd.Context(), args[0], core.GetEnvironment())
			if err != nil {
				core.HandleClientError("Secret", err)
			}
			if plain {
				fmt.Println(value)
				return
			}
			core.Output([]core.SecretRow{{Key: args[0], Value: value}}, core.GetOutputFormat())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Print only the raw secret value")
	return cmd
}
