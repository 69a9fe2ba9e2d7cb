package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/spf13/cobra"
)

func init() {
	core.RegisterCommand("run", func() *cobra.Command {
		return RunCmd()
	})
}

func RunCmd() *cobra.Command {
	var commandSecrets []string
	cmd := &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Run a command with workspace secrets injected into its environment",
		Long: `Fetch all secrets of the current workspace and environment and run
the given command with them injected into its environment. Remote secrets
win over inherited variables and local env files, so the child always sees
the workspace values.

The child's stdin, stdout and stderr are passed through, interrupts are
forwarded, and its exit code becomes the exit code of this command.`,
		Example: `  # Start an app with its secrets in place
  infisical run -- npm start

  # Same, against another environment
  infisical run -e prod -- ./server

  # Secrets combined with a local override file
  infisical run --env-file .env.local -- make test

  # Ad-hoc extra values without touching any file
  infisical run -s DEBUG=true -- npm start`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			core.LoadCommandSecrets(commandSecrets)
			c := requireClient("Run")
			values, err := c.GetAllSecrets(cmd.Context(), core.GetEnvironment())
			if err != nil {
				core.HandleClientError("Run", err)
			}

			env := buildCommandEnvironment(values)

			child := exec.Command(args[0], args[1:]...)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			child.Env = env.ToEnv()

			core.PrintInfo(fmt.Sprintf("Injecting %d secrets into %s", len(values), args[0]))

			if err := child.Start(); err != nil {
				core.PrintError("Run", fmt.Errorf("failed to start %s: %w", args[0], err))
				core.ExitWithError(err)
			}

			// Forward interrupts to the child so it can shut down cleanly
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			go func() {
				for s := range sig {
					_ = child.Process.Signal(s)
				}
			}()

			if err := child.Wait(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					core.Exit(exitErr.ExitCode())
				}
				core.PrintError("Run", err)
				core.ExitWithError(err)
			}
			core.Exit(0)
		},
	}
	cmd.Flags().StringSliceVarP(&commandSecrets, "secrets", "s", []string{}, "Extra NAME=VALUE pairs merged into the child environment")
	return cmd
}

// buildCommandEnvironment layers the child environment: inherited variables
// first, then local env file values, then remote secrets on top.
func buildCommandEnvironment(values map[string]string) core.CommandEnv {
	env := core.CommandEnv{}
	env.AddClientEnv()
	for _, local := range core.GetUniqueEnvs() {
		env.Set(local.Name, local.Value)
	}
	for name, value := range values {
		if core.IsIgnoredEnv(name) {
			continue
		}
		env.Set(name, value)
	}
	return env
}
