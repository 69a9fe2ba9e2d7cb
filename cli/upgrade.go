package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/animus-coop/infisical-go/cli/core"
	"github.com/spf13/cobra"
)

func init() {
	core.RegisterCommand("upgrade", func() *cobra.Command {
		return UpgradeCmd()
	})
}

func UpgradeCmd() *cobra.Command {
	var targetVersion string
	var force bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade the Infisical CLI to the latest version",
		Long: `Upgrade the Infisical CLI in place.

The command detects how the CLI was installed and updates it in the same
location, so the binary on PATH is always the one that gets replaced.

Supported installation methods:
  - Homebrew
  - install.sh / direct binary download`,
		Example: `  # Upgrade to the latest release
  infisical upgrade

  # Pin a specific release
  infisical upgrade --version v1.2.3

  # Reinstall the current version
  infisical upgrade --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(targetVersion, force)
		},
	}

	cmd.Flags().StringVar(&targetVersion, "version", "", "Target version to upgrade to (e.g. v1.2.3)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinstall even when already on the latest version")

	return cmd
}

// detectInstallationMethod determines how the CLI was installed by looking at
// where the running binary lives.
func detectInstallationMethod() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		realPath = execPath
	}

	if isInstalledViaHomebrew(realPath) {
		return "brew", nil
	}
	return "curl", nil
}

// isInstalledViaHomebrew reports whether the binary lives under the Homebrew
// prefix. The formula name does not matter here; living in the prefix means
// brew owns the file.
func isInstalledViaHomebrew(execPath string) bool {
	brewPath, err := exec.LookPath("brew")
	if err != nil {
		return false
	}

	output, err := exec.Command(brewPath, "--prefix").Output()
	if err != nil {
		return false
	}

	brewPrefix := strings.TrimSpace(string(output))
	if brewPrefix == "" {
		return false
	}
	return strings.HasPrefix(execPath, brewPrefix)
}

func runUpgrade(targetVersion string, force bool) error {
	method, err := detectInstallationMethod()
	if err != nil {
		return err
	}

	core.PrintInfo(fmt.Sprintf("Detected installation method: %s", method))

	switch method {
	case "brew":
		return upgradeViaBrew(force)
	case "curl":
		return upgradeViaCurl(targetVersion)
	default:
		return fmt.Errorf("unknown installation method: %s", method)
	}
}

func upgradeViaBrew(force bool) error {
	core.PrintInfo("Upgrading the Infisical CLI via Homebrew...")

	var cmd *exec.Cmd
	if force {
		cmd = exec.Command("brew", "reinstall", "infisical-go")
	} else {
		cmd = exec.Command("brew", "upgrade", "infisical-go")
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		// brew exits 1 when the formula is already current
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			core.PrintInfo("The Infisical CLI is already up to date")
			return nil
		}
		return fmt.Errorf("brew upgrade failed: %w", err)
	}

	core.PrintSuccess("Infisical CLI upgraded via Homebrew")
	return nil
}

func upgradeViaCurl(targetVersion string) error {
	core.PrintInfo("Upgrading the Infisical CLI via the install script...")

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	realPath, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		realPath = execPath
	}

	binDir := filepath.Dir(realPath)
	needsSudo := needsSudoForPath(binDir)

	installScriptURL := "https://raw.githubusercontent.com/animus-coop/infisical-go/main/install.sh"

	env := fmt.Sprintf("BINDIR=%s", binDir)
	if targetVersion != "" {
		core.PrintInfo(fmt.Sprintf("Upgrading to version %s...", targetVersion))
		env = fmt.Sprintf("VERSION=%s %s", targetVersion, env)
	} else {
		core.PrintInfo("Upgrading to the latest version...")
	}

	shell := "sh"
	if needsSudo {
		shell = "sudo -E sh"
		core.PrintWarning("This upgrade requires sudo privileges")
	}
	shellCmd := fmt.Sprintf("curl -fsSL %s | %s %s", installScriptURL, env, shell)

	cmd := exec.Command("sh", "-c", shellCmd)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	core.PrintSuccess("Infisical CLI upgraded")
	return nil
}

// needsSudoForPath reports whether writing to the directory normally requires
// elevated privileges.
func needsSudoForPath(path string) bool {
	systemPaths := []string{
		"/usr/local/bin",
		"/usr/bin",
		"/bin",
		"/usr/sbin",
		"/sbin",
	}

	for _, sysPath := range systemPaths {
		if strings.HasPrefix(path, sysPath) {
			return true
		}
	}
	return false
}
