package sdk

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override stored credentials. When both are set,
// LoadCredentials returns them without touching the config file, so CI jobs
// never need a ~/.infisical directory.
const (
	EnvClientID     = "INFISICAL_CLIENT_ID"
	EnvClientSecret = "INFISICAL_CLIENT_SECRET"
)

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".infisical"), nil
}

func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig reads ~/.infisical/config.yaml. A missing or unreadable file is
// not an error, it yields the zero config.
func LoadConfig() Config {
	config := Config{}
	path, err := configPath()
	if err != nil {
		return config
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}
	}
	return config
}

// WriteConfig persists the config to ~/.infisical/config.yaml, creating the
// directory on first use. The file is written 0600: it holds client secrets.
func WriteConfig(config Config) error {
	dir, err := configDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadCredentials resolves the credentials for a workspace. INFISICAL_CLIENT_ID
// and INFISICAL_CLIENT_SECRET take precedence over anything on disk; otherwise
// the workspace entry from the config file is returned. An unknown workspace
// yields zero credentials, which IsValid reports as unusable.
func LoadCredentials(workspaceName string) Credentials {
	if id, secret := os.Getenv(EnvClientID), os.Getenv(EnvClientSecret); id != "" && secret != "" {
		return Credentials{ClientID: id, ClientSecret: secret}
	}
	config := LoadConfig()
	for _, workspace := range config.Workspaces {
		if workspace.Name == workspaceName {
			return workspace.Credentials
		}
	}
	return Credentials{}
}

// SaveCredentials upserts the workspace entry and makes it the current
// context workspace.
func SaveCredentials(workspaceName string, credentials Credentials) error {
	config := LoadConfig()
	found := false
	for i, workspace := range config.Workspaces {
		if workspace.Name == workspaceName {
			config.Workspaces[i].Credentials = credentials
			found = true
			break
		}
	}
	if !found {
		config.Workspaces = append(config.Workspaces, WorkspaceConfig{
			Name:        workspaceName,
			Credentials: credentials,
		})
	}
	config.Context.Workspace = workspaceName
	return WriteConfig(config)
}

// ClearCredentials removes the workspace entry. If it was the current
// context workspace, the context falls back to the first remaining workspace.
func ClearCredentials(workspaceName string) error {
	config := LoadConfig()
	workspaces := make([]WorkspaceConfig, 0, len(config.Workspaces))
	for _, workspace := range config.Workspaces {
		if workspace.Name != workspaceName {
			workspaces = append(workspaces, workspace)
		}
	}
	config.Workspaces = workspaces
	if config.Context.Workspace == workspaceName {
		config.Context.Workspace = ""
		if len(workspaces) > 0 {
			config.Context.Workspace = workspaces[0].Name
		}
	}
	return WriteConfig(config)
}

func CurrentContext() ContextConfig {
	return LoadConfig().Context
}

// SetCurrentWorkspace switches the context to a stored workspace. It fails
// when the workspace has no credentials on file, so `infisical login` is the
// only way to introduce a new one.
func SetCurrentWorkspace(workspaceName string) error {
	config := LoadConfig()
	for _, workspace := range config.Workspaces {
		if workspace.Name == workspaceName {
			config.Context.Workspace = workspaceName
			return WriteConfig(config)
		}
	}
	return fmt.Errorf("workspace %s not found, run `infisical login %s` first", workspaceName, workspaceName)
}

// SetCurrentEnvironment records the default environment used when a command
// or client config does not name one.
func SetCurrentEnvironment(environment string) error {
	config := LoadConfig()
	config.Context.Environment = environment
	return WriteConfig(config)
}

func ListWorkspaces() []string {
	config := LoadConfig()
	names := make([]string, 0, len(config.Workspaces))
	for _, workspace := range config.Workspaces {
		names = append(names, workspace.Name)
	}
	return names
}
