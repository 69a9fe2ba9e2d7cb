package auth

import (
	"context"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
)

// validateCredentials does a real login against the API so bad identities
// are rejected before anything is written to disk.
func validateCredentials(workspace string, credentials sdk.Credentials) error {
	c, err := sdk.NewClient(sdk.ClientConfig{
		BaseURL:     core.GetBaseURL(),
		Workspace:   workspace,
		Environment: core.GetEnvironment(),
		Credentials: credentials,
	})
	if err != nil {
		return err
	}

	_, err = c.Login(context.Background())
	return err
}
