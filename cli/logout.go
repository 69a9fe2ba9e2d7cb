package cli

import (
	"fmt"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func init() {
	// Auto-register this command
	core.RegisterCommand("logout", func() *cobra.Command {
		return LogoutCmd()
	})
}

func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout [workspace]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Logout from Infisical",
		Long: `Remove stored credentials for a workspace.

This command only touches ~/.infisical/config.yaml on this machine. The
machine identity stays valid on the server, and secrets in the workspace
are not affected.

If you have multiple workspaces authenticated, you can logout from:
- A specific workspace by providing its name
- Any workspace interactively by running 'infisical logout' without arguments

Examples:
  # Logout from current workspace (interactive selection)
  infisical logout

  # Logout from specific workspace
  infisical logout my-workspace

  # Login again after logout
  infisical login my-workspace`,
		ValidArgsFunction: GetWorkspaceValidArgsFunction(),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				logoutWorkspace(args[0])
				return
			}

			workspaces := sdk.ListWorkspaces()
			if len(workspaces) == 0 {
				err := fmt.Errorf("no authenticated workspaces found")
				core.PrintError("Logout", err)
				core.ExitWithError(err)
			}

			selectedWorkspace := workspaces[0]
			if len(workspaces) > 1 {
				// Create options for huh form
				options := make([]huh.Option[string], 0, len(workspaces))
				for _, ws := range workspaces {
					options = append(options, huh.NewOption(ws, ws))
				}

				form := huh.NewForm(
					huh.NewGroup(
						huh.NewSelect[string]().
							Title("Choose a workspace to logout from").
							Description("Select the workspace you want to logout from").
							Options(options...).
							Value(&selectedWorkspace),
					),
				)

				form.WithTheme(core.GetHuhTheme())

				err := form.Run()
				if err != nil {
					err = fmt.Errorf("error selecting workspace: %w", err)
					core.PrintError("Logout", err)
					core.ExitWithError(err)
				}
			}

			logoutWorkspace(selectedWorkspace)
		},
	}
}

func logoutWorkspace(workspace string) {
	if err := sdk.ClearCredentials(workspace); err != nil {
		core.PrintError("Logout", err)
		core.ExitWithError(err)
	}
	core.PrintSuccess(fmt.Sprintf("Logged out from workspace %s", workspace))
}
