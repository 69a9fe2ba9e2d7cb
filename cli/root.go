package cli

import (
	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
)

// Execute runs the root command with the release metadata baked in by goreleaser.
func Execute(releaseVersion string, releaseCommit string, releaseDate string) error {
	return core.Execute(releaseVersion, releaseCommit, releaseDate)
}

// requireClient returns the API client for the current workspace or exits
// with a login hint when no usable credentials exist.
func requireClient(operation string) *sdk.Client {
	c, err := core.GetClient()
	if err != nil {
		core.PrintError(operation, err)
		core.ExitWithError(err)
	}
	return c
}
