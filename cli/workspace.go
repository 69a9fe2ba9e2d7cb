package cli

import (
	"fmt"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/spf13/cobra"
)

func init() {
	core.RegisterCommand("workspace", func() *cobra.Command {
		return ListOrSetWorkspacesCmd()
	})
}

func ListOrSetWorkspacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "workspaces [workspace]",
		Aliases: []string{"ws", "workspace"},
		Short:   "List all workspaces with the current workspace highlighted, set optionally a new current workspace",
		Long: `List and manage Infisical workspaces.

A workspace (project) holds the secrets of one application, split into
environments like dev, staging and prod. The current workspace (marked
with *) determines where 'infisical secrets', 'infisical run' and
'infisical export' read from unless you override with the --workspace flag.

To switch workspaces, provide the workspace name as an argument.
To list all authenticated workspaces, run without arguments.`,
		Example: `  # List all authenticated workspaces
  infisical workspaces

  # Switch to different workspace
  infisical workspaces production

  # Use specific workspace for one command (doesn't switch current)
  infisical secrets --workspace staging`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) > 0 {
				if err := sdk.SetCurrentWorkspace(args[0]); err != nil {
					core.PrintError("Workspace", err)
					core.ExitWithError(err)
				}
				core.SetWorkspace(args[0])
			}

			workspaces := sdk.ListWorkspaces()
			currentWorkspace := sdk.CurrentContext().Workspace

			fmt.Printf("%-30s %-20s\n", "NAME", "CURRENT")

			for _, workspace := range workspaces {
				current := " "
				if workspace == currentWorkspace {
					current = "*"
				}
				fmt.Printf("%-30s %-20s\n", workspace, current)
			}
		},
		ValidArgsFunction: GetWorkspaceValidArgsFunction(),
	}
}
