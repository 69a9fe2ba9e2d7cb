package sdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateConfig points the config store at a throwaway home directory and
// clears the credential env overrides.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvClientID, "")
	t.Setenv(EnvClientSecret, "")
	return home
}

func TestConfigRoundTrip(t *testing.T) {
	home := isolateConfig(t)

	assert.Equal(t, Config{}, LoadConfig(), "missing file yields the zero config")

	creds := Credentials{ClientID: "id-1", ClientSecret: "secret-1"}
	require.NoError(t, SaveCredentials("ws1", creds))

	config := LoadConfig()
	require.Len(t, config.Workspaces, 1)
	assert.Equal(t, "ws1", config.Workspaces[0].Name)
	assert.Equal(t, creds, config.Workspaces[0].Credentials)
	assert.Equal(t, "ws1", config.Context.Workspace, "login makes the workspace current")

	info, err := os.Stat(filepath.Join(home, ".infisical", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "the config file holds client secrets")
}

func TestSaveCredentialsUpserts(t *testing.T) {
	isolateConfig(t)

	require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "old", ClientSecret: "old"}))
	require.NoError(t, SaveCredentials("ws2", Credentials{ClientID: "two", ClientSecret: "two"}))
	require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "new", ClientSecret: "new"}))

	config := LoadConfig()
	require.Len(t, config.Workspaces, 2, "re-login must not duplicate the workspace entry")
	assert.Equal(t, "new", config.Workspaces[0].Credentials.ClientID)
	assert.Equal(t, "ws1", config.Context.Workspace)
}

func TestLoadCredentials(t *testing.T) {
	t.Run("reads the workspace entry", func(t *testing.T) {
		isolateConfig(t)
		require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "id", ClientSecret: "sec"}))

		creds := LoadCredentials("ws1")
		assert.True(t, creds.IsValid())
		assert.Equal(t, "id", creds.ClientID)
	})

	t.Run("unknown workspace yields invalid credentials", func(t *testing.T) {
		isolateConfig(t)
		creds := LoadCredentials("nope")
		assert.False(t, creds.IsValid())
	})

	t.Run("environment variables take precedence", func(t *testing.T) {
		isolateConfig(t)
		require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "file", ClientSecret: "file"}))
		t.Setenv(EnvClientID, "env-id")
		t.Setenv(EnvClientSecret, "env-secret")

		creds := LoadCredentials("ws1")
		assert.Equal(t, "env-id", creds.ClientID)
		assert.Equal(t, "env-secret", creds.ClientSecret)
	})

	t.Run("partial environment override is ignored", func(t *testing.T) {
		isolateConfig(t)
		require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "file", ClientSecret: "file"}))
		t.Setenv(EnvClientID, "env-id")

		creds := LoadCredentials("ws1")
		assert.Equal(t, "file", creds.ClientID, "an id without a secret is not a usable override")
	})
}

func TestClearCredentials(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "a", ClientSecret: "a"}))
	require.NoError(t, SaveCredentials("ws2", Credentials{ClientID: "b", ClientSecret: "b"}))
	require.NoError(t, SetCurrentWorkspace("ws1"))

	require.NoError(t, ClearCredentials("ws1"))
	config := LoadConfig()
	require.Len(t, config.Workspaces, 1)
	assert.Equal(t, "ws2", config.Context.Workspace, "context falls back to a remaining workspace")

	require.NoError(t, ClearCredentials("ws2"))
	config = LoadConfig()
	assert.Empty(t, config.Workspaces)
	assert.Empty(t, config.Context.Workspace)
}

func TestSetCurrentWorkspace(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "a", ClientSecret: "a"}))
	require.NoError(t, SaveCredentials("ws2", Credentials{ClientID: "b", ClientSecret: "b"}))

	require.NoError(t, SetCurrentWorkspace("ws1"))
	assert.Equal(t, "ws1", CurrentContext().Workspace)

	err := SetCurrentWorkspace("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetCurrentEnvironment(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, SetCurrentEnvironment("staging"))
	assert.Equal(t, "staging", CurrentContext().Environment)
}

func TestListWorkspaces(t *testing.T) {
	isolateConfig(t)
	assert.Empty(t, ListWorkspaces())

	require.NoError(t, SaveCredentials("ws1", Credentials{ClientID: "a", ClientSecret: "a"}))
	require.NoError(t, SaveCredentials("ws2", Credentials{ClientID: "b", ClientSecret: "b"}))
	assert.Equal(t, []string{"ws1", "ws2"}, ListWorkspaces())
}
