package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config mirrors infisical.toml, the optional per-project file pinning a
// workspace and environment so teams do not pass -w/-e on every call.
type Config struct {
	Name        string   `toml:"name"`
	Workspace   string   `toml:"workspace"`
	Environment string   `toml:"environment"`
	EnvFiles    []string `toml:"env-files"`
	Env         Envs     `toml:"env"`
}

func readConfigToml(folder string) {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(err)
		return
	}

	content, err := os.ReadFile(filepath.Join(cwd, folder, "infisical.toml"))
	if err != nil {
		return
	}

	err = toml.Unmarshal(content, &config)
	if err != nil {
		fmt.Println(err)
		return
	}

	if len(config.EnvFiles) > 0 {
		envFiles = config.EnvFiles
	}
}
