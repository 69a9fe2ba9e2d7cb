package auth

import (
	"fmt"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/charmbracelet/huh/spinner"
)

// LoginUniversalAuth validates a machine identity against the workspace and
// stores it on success. Credentials are only persisted after a real login
// round-trip, so a typo never replaces a working identity.
func LoginUniversalAuth(workspace string, clientID string, clientSecret string) {
	creds := sdk.Credentials{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}

	var err error
	_ = spinner.New().
		Title(fmt.Sprintf("Verifying credentials for workspace %s...", workspace)).
		Action(func() {
			err = validateCredentials(workspace, creds)
		}).
		Run()
	if err != nil {
		err = fmt.Errorf("failed to access workspace '%s': %w", workspace, err)
		core.PrintError("Login", err)
		core.ExitWithError(err)
	}

	if err := sdk.SaveCredentials(workspace, creds); err != nil {
		core.PrintError("Login", err)
		core.ExitWithError(err)
	}
	core.SetWorkspace(workspace)
	core.PrintSuccess(fmt.Sprintf("Successfully logged in to workspace %s", workspace))
}

// LoginEnvCredentials stores the identity found in INFISICAL_CLIENT_ID and
// INFISICAL_CLIENT_SECRET, validating it first.
func LoginEnvCredentials(workspace string, clientID string, clientSecret string) {
	core.PrintInfo("Using credentials from environment variables INFISICAL_CLIENT_ID and INFISICAL_CLIENT_SECRET")
	LoginUniversalAuth(workspace, clientID, clientSecret)
}
