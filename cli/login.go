package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/animus-coop/infisical-go/cli/auth"
	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func init() {
	// Auto-register this command
	core.RegisterCommand("login", func() *cobra.Command {
		return LoginCmd()
	})
}

func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [workspace]",
		Short: "Login to Infisical",
		Long: `Login to an Infisical workspace with a universal-auth machine identity.

The client ID and secret can come from the INFISICAL_CLIENT_ID and
INFISICAL_CLIENT_SECRET environment variables, otherwise an interactive
prompt asks for them. Credentials are validated against the API before
they are stored in ~/.infisical/config.yaml.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: GetWorkspaceValidArgsFunction(),
		Run: func(cmd *cobra.Command, args []string) {
			workspace := core.GetWorkspace()
			if len(args) > 0 {
				workspace = core.Slugify(args[0])
			}

			// Check for environment variables first
			clientID := os.Getenv(sdk.EnvClientID)
			clientSecret := os.Getenv(sdk.EnvClientSecret)
			if clientID != "" && clientSecret != "" {
				if workspace == "" {
					core.PrintError("Login", fmt.Errorf("a workspace is required, run `infisical login <workspace>`"))
					os.Exit(1)
				}
				auth.LoginEnvCredentials(workspace, clientID, clientSecret)
				return
			}

			if core.IsCIEnvironment() {
				core.PrintError("Login", fmt.Errorf("interactive login is not available in CI, set %s and %s", sdk.EnvClientID, sdk.EnvClientSecret))
				os.Exit(1)
			}

			showLoginForm(workspace)
		},
	}
	return cmd
}

func showLoginForm(workspace string) {
	var clientID string
	var clientSecret string

	fields := []huh.Field{}
	if workspace == "" {
		fields = append(fields, huh.NewInput().
			Title("Workspace").
			Description("Slug of the workspace to log in to").
			Validate(requireValue("workspace")).
			Value(&workspace))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Client ID").
			Description("Universal-auth machine identity client ID").
			Validate(requireValue("client ID")).
			Value(&clientID),
		huh.NewInput().
			Title("Client Secret").
			EchoMode(huh.EchoModePassword).
			Validate(requireValue("client secret")).
			Value(&clientSecret),
	)

	form := huh.NewForm(huh.NewGroup(fields...))
	form.WithTheme(core.GetHuhTheme())

	err := form.Run()
	if err != nil {
		core.PrintError("Login", err)
		os.Exit(1)
	}

	auth.LoginUniversalAuth(core.Slugify(workspace), strings.TrimSpace(clientID), strings.TrimSpace(clientSecret))
}

func requireValue(name string) func(string) error {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("the %s is required", name)
		}
		return nil
	}
}
