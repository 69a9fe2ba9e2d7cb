package sdk

type Config struct {
	Context    ContextConfig     `yaml:"context"`
	Workspaces []WorkspaceConfig `yaml:"workspaces"`
}
type WorkspaceConfig struct {
	Name        string      `yaml:"name"`
	Credentials Credentials `yaml:"credentials"`
}

type ContextConfig struct {
	Workspace   string `yaml:"workspace"`
	Environment string `yaml:"environment"`
}

// Credentials is a Universal Auth machine identity. Access tokens are never
// part of it and never written to disk; they live in a client's token cell
// for the lifetime of the process only.
type Credentials struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
}

func (c Credentials) IsValid() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
