package cli

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/animus-coop/infisical-go/sdk"
)

func TestGetWorkspaceFromFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"long flag with equals", []string{"infisical", "secrets", "--workspace=acme"}, "acme"},
		{"short flag with equals", []string{"infisical", "secrets", "-w=acme"}, "acme"},
		{"long flag with space", []string{"infisical", "secrets", "--workspace", "acme"}, "acme"},
		{"short flag with space", []string{"infisical", "secrets", "-w", "acme"}, "acme"},
		{"no flag", []string{"infisical", "secrets"}, ""},
		{"flag without value", []string{"infisical", "secrets", "--workspace"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expected, getWorkspaceFromFlags())
		})
	}
}

func TestGetEnvironmentFromFlags(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"long flag with equals", []string{"infisical", "secrets", "--env=prod"}, "prod"},
		{"short flag with equals", []string{"infisical", "secrets", "-e=prod"}, "prod"},
		{"long flag with space", []string{"infisical", "secrets", "--env", "prod"}, "prod"},
		{"short flag with space", []string{"infisical", "secrets", "-e", "prod"}, "prod"},
		{"no flag", []string{"infisical", "secrets"}, ""},
		{"flag without value", []string{"infisical", "secrets", "-e"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			assert.Equal(t, tt.expected, getEnvironmentFromFlags())
		})
	}
}

func TestCompleteWorkspaceNames(t *testing.T) {
	// Point the config at a scratch home and restore afterwards
	originalHome := os.Getenv("HOME")
	originalUserProfile := os.Getenv("USERPROFILE")
	defer func() {
		os.Setenv("HOME", originalHome)
		os.Setenv("USERPROFILE", originalUserProfile)
	}()

	tempDir, err := os.MkdirTemp("", "completion_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	os.Setenv("HOME", tempDir)
	os.Setenv("USERPROFILE", tempDir)

	t.Run("no config file", func(t *testing.T) {
		names, directive := CompleteWorkspaceNames(nil, nil, "")
		assert.Empty(t, names)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	creds := sdk.Credentials{ClientID: "test-id", ClientSecret: "test-secret"}
	require.NoError(t, sdk.SaveCredentials("alpha", creds))
	require.NoError(t, sdk.SaveCredentials("beta", creds))
	require.NoError(t, sdk.SaveCredentials("production", creds))

	t.Run("all workspaces", func(t *testing.T) {
		names, directive := CompleteWorkspaceNames(nil, nil, "")
		assert.Equal(t, []string{"alpha", "beta", "production"}, names)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	t.Run("prefix filter", func(t *testing.T) {
		names, _ := CompleteWorkspaceNames(nil, nil, "be")
		assert.Equal(t, []string{"beta"}, names)
	})

	t.Run("no match", func(t *testing.T) {
		names, _ := CompleteWorkspaceNames(nil, nil, "zzz")
		assert.Empty(t, names)
	})
}

func TestGetWorkspaceValidArgsFunction(t *testing.T) {
	fn := GetWorkspaceValidArgsFunction()

	// A second positional argument gets no suggestions
	names, directive := fn(nil, []string{"already-chosen"}, "")
	assert.Nil(t, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestGetClientForCompletion(t *testing.T) {
	originalArgs := os.Args
	originalHome := os.Getenv("HOME")
	originalUserProfile := os.Getenv("USERPROFILE")
	originalClientID := os.Getenv("INFISICAL_CLIENT_ID")
	originalClientSecret := os.Getenv("INFISICAL_CLIENT_SECRET")
	defer func() {
		os.Args = originalArgs
		os.Setenv("HOME", originalHome)
		os.Setenv("USERPROFILE", originalUserProfile)
		os.Setenv("INFISICAL_CLIENT_ID", originalClientID)
		os.Setenv("INFISICAL_CLIENT_SECRET", originalClientSecret)
	}()
	os.Unsetenv("INFISICAL_CLIENT_ID")
	os.Unsetenv("INFISICAL_CLIENT_SECRET")
	os.Args = []string{"infisical", "__complete", "secrets", "get", ""}

	tempDir, err := os.MkdirTemp("", "completion_client_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	os.Setenv("HOME", tempDir)
	os.Setenv("USERPROFILE", tempDir)

	t.Run("no workspace selected", func(t *testing.T) {
		assert.Nil(t, getClientForCompletion())
	})

	creds := sdk.Credentials{ClientID: "test-id", ClientSecret: "test-secret"}
	require.NoError(t, sdk.SaveCredentials("acme", creds))

	t.Run("current context workspace", func(t *testing.T) {
		client := getClientForCompletion()
		require.NotNil(t, client)
		assert.Equal(t, "acme", client.Workspace())
		assert.Equal(t, core.DefaultEnvironment, client.Environment())
	})

	t.Run("workspace flag wins over context", func(t *testing.T) {
		require.NoError(t, sdk.SaveCredentials("staging-ws", creds))

		os.Args = []string{"infisical", "secrets", "get", "-w", "acme", ""}
		client := getClientForCompletion()
		require.NotNil(t, client)
		assert.Equal(t, "acme", client.Workspace())
	})

	t.Run("workspace without credentials", func(t *testing.T) {
		os.Args = []string{"infisical", "secrets", "get", "--workspace=ghost", ""}
		assert.Nil(t, getClientForCompletion())
	})

	t.Run("environment flag", func(t *testing.T) {
		os.Args = []string{"infisical", "secrets", "get", "--env=staging", ""}
		client := getClientForCompletion()
		require.NotNil(t, client)
		assert.Equal(t, "staging", client.Environment())
	})

	t.Run("context environment", func(t *testing.T) {
		os.Args = []string{"infisical", "secrets", "get", ""}
		require.NoError(t, sdk.SetCurrentEnvironment("qa"))

		client := getClientForCompletion()
		require.NotNil(t, client)
		assert.Equal(t, "qa", client.Environment())
	})
}

func TestCompleteSecretNames(t *testing.T) {
	originalArgs := os.Args
	originalBaseURL := core.BASE_URL
	originalHome := os.Getenv("HOME")
	originalUserProfile := os.Getenv("USERPROFILE")
	originalClientID := os.Getenv("INFISICAL_CLIENT_ID")
	originalClientSecret := os.Getenv("INFISICAL_CLIENT_SECRET")
	defer func() {
		os.Args = originalArgs
		core.BASE_URL = originalBaseURL
		os.Setenv("HOME", originalHome)
		os.Setenv("USERPROFILE", originalUserProfile)
		os.Setenv("INFISICAL_CLIENT_ID", originalClientID)
		os.Setenv("INFISICAL_CLIENT_SECRET", originalClientSecret)
	}()
	os.Unsetenv("INFISICAL_CLIENT_ID")
	os.Unsetenv("INFISICAL_CLIENT_SECRET")
	os.Args = []string{"infisical", "__complete", "secrets", "get", ""}

	tempDir, err := os.MkdirTemp("", "completion_secrets_test")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)
	os.Setenv("HOME", tempDir)
	os.Setenv("USERPROFILE", tempDir)

	require.NoError(t, sdk.SaveCredentials("acme", sdk.Credentials{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
	}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/auth/universal-auth/login") {
			fmt.Fprint(w, `{"accessToken":"test-token"}`)
			return
		}
		fmt.Fprint(w, `{"secrets":[
			{"secretKey":"DATABASE_URL","secretValue":"postgres://localhost/app"},
			{"secretKey":"API_KEY","secretValue":"k-123"},
			{"secretKey":"DEBUG","secretValue":"true"}
		]}`)
	}))
	defer server.Close()
	core.BASE_URL = server.URL

	t.Run("all secret names sorted", func(t *testing.T) {
		names, directive := CompleteSecretNames(nil, nil, "")
		assert.Equal(t, []string{"API_KEY", "DATABASE_URL", "DEBUG"}, names)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})

	t.Run("prefix filter", func(t *testing.T) {
		names, _ := CompleteSecretNames(nil, nil, "D")
		assert.Equal(t, []string{"DATABASE_URL", "DEBUG"}, names)
	})

	t.Run("API failure degrades to nothing", func(t *testing.T) {
		core.BASE_URL = "http://127.0.0.1:1"
		defer func() { core.BASE_URL = server.URL }()

		names, directive := CompleteSecretNames(nil, nil, "")
		assert.Empty(t, names)
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	})
}
