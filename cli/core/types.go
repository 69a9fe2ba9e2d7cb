package core

import (
	"fmt"
	"os"
	"strings"
)

// CommandEnv assembles the environment handed to a child process: the
// caller's environment first, then workspace secrets layered on top so a
// remote value always wins over an inherited one.
type CommandEnv map[string]string

func (c *CommandEnv) Set(key, value string) {
	(*c)[key] = value
}

func (c *CommandEnv) AddClientEnv() {
	for _, envVar := range os.Environ() {
		parts := strings.Split(envVar, "=")
		if len(parts) < 2 {
			continue
		}
		key := parts[0]
		value := strings.Join(parts[1:], "=")
		c.Set(key, value)
	}
}

func (c *CommandEnv) ToEnv() []string {
	env := []string{}
	for k, v := range *c {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}
