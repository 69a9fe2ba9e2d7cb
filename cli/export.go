package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func init() {
	core.RegisterCommand("export", func() *cobra.Command {
		return ExportCmd()
	})
}

func ExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all secrets of the current workspace and environment to stdout",
		Long: `Write every secret of the current workspace and environment to stdout
in a machine-readable format, dotenv by default. Unlike 'infisical secrets'
nothing else is printed, so the output can be piped or redirected as is.`,
		Example: `  # Write a local env file
  infisical export > .env

  # Production secrets as JSON
  infisical export -e prod --format json

  # Feed another tool
  infisical export --format yaml | kubectl create secret generic app --from-file=/dev/stdin`,
		Run: func(cmd *cobra.Command, args []string) {
			c := requireClient("Export")
			values, err := c.GetAllSecrets(cmd.Context(), core.GetEnvironment())
			if err != nil {
				core.HandleClientError("Export", err)
			}

			out, err := formatSecrets(values, format)
			if err != nil {
				core.PrintError("Export", err)
				core.ExitWithError(err)
			}
			fmt.Print(out)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dotenv", "Output format. One of: dotenv,json,yaml")
	return cmd
}

// formatSecrets serializes secrets for export. Keys are emitted sorted in
// every format so exports are diffable.
func formatSecrets(values map[string]string, format string) (string, error) {
	filtered := make(map[string]string, len(values))
	for name, value := range values {
		if core.IsIgnoredEnv(name) {
			continue
		}
		filtered[name] = value
	}

	switch format {
	case "dotenv":
		out, err := godotenv.Marshal(filtered)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	case "json":
		data, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "yaml":
		keys := make([]string, 0, len(filtered))
		for name := range filtered {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		formatted := yaml.MapSlice{}
		for _, name := range keys {
			formatted = append(formatted, yaml.MapItem{Key: name, Value: filtered[name]})
		}
		data, err := yaml.Marshal(formatted)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format %s, expected dotenv, json or yaml", format)
	}
}
