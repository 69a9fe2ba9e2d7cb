package cli

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/spf13/cobra"
)

// completionTimeout is the maximum time to wait for API calls during completion
const completionTimeout = 3 * time.Second

// completionContext returns a context with a timeout for completion API calls
func completionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), completionTimeout)
}

// getWorkspaceFromFlags parses os.Args to find -w or --workspace flag value
func getWorkspaceFromFlags() string {
	args := os.Args
	for i, arg := range args {
		// Check for --workspace=value or -w=value
		if strings.HasPrefix(arg, "--workspace=") {
			return strings.TrimPrefix(arg, "--workspace=")
		}
		if strings.HasPrefix(arg, "-w=") {
			return strings.TrimPrefix(arg, "-w=")
		}
		// Check for --workspace value or -w value
		if (arg == "--workspace" || arg == "-w") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// getEnvironmentFromFlags parses os.Args to find -e or --env flag value
func getEnvironmentFromFlags() string {
	args := os.Args
	for i, arg := range args {
		if strings.HasPrefix(arg, "--env=") {
			return strings.TrimPrefix(arg, "--env=")
		}
		if strings.HasPrefix(arg, "-e=") {
			return strings.TrimPrefix(arg, "-e=")
		}
		if (arg == "--env" || arg == "-e") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// getClientForCompletion returns a client for the workspace named in flags,
// or for the current context workspace when no flag is set. Returns nil when
// no workspace is selected or its credentials are missing, so completion
// silently produces nothing instead of an error.
func getClientForCompletion() *sdk.Client {
	workspace := getWorkspaceFromFlags()
	if workspace == "" {
		workspace = sdk.CurrentContext().Workspace
	}
	if workspace == "" {
		return nil
	}

	credentials := sdk.LoadCredentials(workspace)
	if !credentials.IsValid() {
		return nil
	}

	environment := getEnvironmentFromFlags()
	if environment == "" {
		environment = sdk.CurrentContext().Environment
	}
	if environment == "" {
		environment = core.DefaultEnvironment
	}

	client, err := sdk.NewClient(sdk.ClientConfig{
		BaseURL:     core.GetBaseURL(),
		Workspace:   workspace,
		Environment: environment,
		Credentials: credentials,
	})
	if err != nil {
		return nil
	}
	return client
}

// CompleteWorkspaceNames returns the workspace names from the local config for shell completion
func CompleteWorkspaceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, name := range sdk.ListWorkspaces() {
		if toComplete == "" || strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// GetWorkspaceValidArgsFunction returns a ValidArgsFunction for commands taking a workspace name
func GetWorkspaceValidArgsFunction() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return CompleteWorkspaceNames(cmd, args, toComplete)
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// CompleteSecretNames returns the secret names of the selected workspace and
// environment for shell completion
func CompleteSecretNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx, cancel := completionContext()
	defer cancel()
	client := getClientForCompletion()
	if client == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	values, err := client.GetAllSecrets(ctx, "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for name := range values {
		if toComplete == "" || strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	return names, cobra.ShellCompDirectiveNoFileComp
}

// GetSecretValidArgsFunction returns a ValidArgsFunction for commands taking a secret name
func GetSecretValidArgsFunction() func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return CompleteSecretNames(cmd, args, toComplete)
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
