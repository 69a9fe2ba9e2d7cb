package core

import (
	"errors"
	"fmt"

	"github.com/animus-coop/infisical-go/sdk"
)

// ClientErrorHint maps an API client error to a remedial hint and, when one
// applies, a runnable follow-up command. Both are empty when the error speaks
// for itself.
func ClientErrorHint(err error) (string, string) {
	var authErr *sdk.AuthenticationError
	if errors.As(err, &authErr) {
		var transportErr *sdk.TransportError
		if errors.As(err, &transportErr) {
			return fmt.Sprintf("Could not reach %s, check your network or INFISICAL_API_URL", BASE_URL), ""
		}
		if GetWorkspace() != "" {
			return "Your credentials were rejected, log in again with:", fmt.Sprintf("infisical login %s", GetWorkspace())
		}
		return "Your credentials were rejected, log in again with:", "infisical login"
	}

	var apiErr *sdk.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsTokenError() {
			return "The access token was rejected twice, log in again with:", fmt.Sprintf("infisical login %s", GetWorkspace())
		}
		if apiErr.NotFound() {
			return fmt.Sprintf("Check the secret name and that environment %s exists in workspace %s", GetEnvironment(), GetWorkspace()), ""
		}
		return "", ""
	}

	var transportErr *sdk.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Sprintf("Could not reach %s, check your network or INFISICAL_API_URL", BASE_URL), ""
	}

	var decodeErr *sdk.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Sprintf("The server at %s did not answer like an Infisical API, check INFISICAL_API_URL", BASE_URL), ""
	}

	return "", ""
}

// HandleClientError prints the failed operation with its cause and hint,
// then exits with code 1. Verbose mode additionally dumps the raw error body.
func HandleClientError(operation string, err error) {
	PrintError(operation, err)

	if verbose {
		var apiErr *sdk.APIError
		if errors.As(err, &apiErr) && apiErr.Body != "" {
			Print(fmt.Sprintf("Response body: %s", apiErr.Body))
		}
		var authErr *sdk.AuthenticationError
		if errors.As(err, &authErr) && authErr.Body != "" {
			Print(fmt.Sprintf("Response body: %s", authErr.Body))
		}
	}

	message, command := ClientErrorHint(err)
	if message != "" && command != "" {
		PrintInfoWithCommand(message, command)
	} else if message != "" {
		PrintInfo(message)
	}

	ExitWithError(err)
}
