package core

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/animus-coop/infisical-go/sdk"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var BASE_URL = "https://app.infisical.com/api"
var APP_URL = "https://app.infisical.com"
var GITHUB_RELEASES_URL = "https://api.github.com/repos/animus-coop/infisical-go/releases"
var UPDATE_CLI_DOC_URL = "https://github.com/animus-coop/infisical-go/releases/latest"

func init() {
	// A .env next to the binary can set the variables below. Missing files
	// are fine.
	_ = godotenv.Load()
	switch os.Getenv("INFISICAL_ENV") {
	case "dev":
		BASE_URL = "https://app.infisical.dev/api"
		APP_URL = "https://app.infisical.dev"
	case "local":
		BASE_URL = "http://localhost:8080/api"
		APP_URL = "http://localhost:8080"
	}
}

// DefaultEnvironment is used when neither a flag, infisical.toml nor the
// stored context names an environment.
const DefaultEnvironment = "dev"

// ANSI color codes
const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// Simple command registry
var commandRegistry = make(map[string]func() *cobra.Command)

// RegisterCommand allows commands to register themselves
func RegisterCommand(name string, cmdFunc func() *cobra.Command) {
	commandRegistry[name] = cmdFunc
}

// GetCommand returns a registered command
func GetCommand(name string) *cobra.Command {
	if cmdFunc, exists := commandRegistry[name]; exists {
		return cmdFunc()
	}
	return &cobra.Command{Use: name, Short: fmt.Sprintf("%s (not implemented)", name)}
}

type versionCache struct {
	Version   string    `json:"version"`
	LastCheck time.Time `json:"last_check"`
}

func getVersionCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".infisical", "version")
}

func readVersionCache() (versionCache, error) {
	var cache versionCache
	path := getVersionCachePath()
	if path == "" {
		return cache, fmt.Errorf("could not determine cache path")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return cache, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}

	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}

	return cache, nil
}

func writeVersionCache(cache versionCache) error {
	path := getVersionCachePath()
	if path == "" {
		return fmt.Errorf("could not determine cache path")
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func notifyNewVersionAvailable(latestVersion, currentVersion string) {
	fmt.Printf("%s⚠️  A new version of the Infisical CLI is available: %s (current: %s)\nRun 'infisical upgrade', or download it at %s\n\n%s",
		colorYellow, latestVersion, currentVersion, UPDATE_CLI_DOC_URL, colorReset)
}

func checkForUpdates(currentVersion string) {
	if currentVersion == "dev" {
		return
	}
	if IsCIEnvironment() {
		return
	}

	// Skip update check for pre-release versions
	if semVer, err := semver.NewVersion(currentVersion); err == nil {
		if semVer.Prerelease() != "" {
			return
		}
	}

	// Read from cache
	cache, err := readVersionCache()
	if err == nil && cache.Version != "" && time.Since(cache.LastCheck) < 24*time.Hour {
		if isNewerVersion(cache.Version, currentVersion) {
			notifyNewVersionAvailable(cache.Version, currentVersion)
		}
		return
	}

	// If cache is invalid or expired, fetch from GitHub
	resp, err := http.Get(GITHUB_RELEASES_URL)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	var releases []struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &releases); err != nil {
		return
	}

	// Filter releases to only include stable versions (N.N.N format)
	var stableVersions []*semver.Version
	for _, release := range releases {
		version := strings.TrimPrefix(release.TagName, "v")

		semVer, err := semver.NewVersion(version)
		if err != nil {
			continue
		}

		if semVer.Prerelease() == "" {
			stableVersions = append(stableVersions, semVer)
		}
	}

	if len(stableVersions) == 0 {
		return
	}

	var latestVersion *semver.Version
	for _, version := range stableVersions {
		if latestVersion == nil || version.GreaterThan(latestVersion) {
			latestVersion = version
		}
	}

	latestVersionString := latestVersion.String()

	// Update cache
	cache = versionCache{
		Version:   latestVersionString,
		LastCheck: time.Now(),
	}
	_ = writeVersionCache(cache)

	if isNewerVersion(latestVersionString, currentVersion) {
		notifyNewVersionAvailable(latestVersionString, currentVersion)
	}
}

// isNewerVersion returns true if latestVersion is newer than currentVersion using semver
func isNewerVersion(latestVersion, currentVersion string) bool {
	latest, err1 := semver.NewVersion(latestVersion)
	current, err2 := semver.NewVersion(currentVersion)
	if err1 != nil || err2 != nil {
		// fallback to string compare if semver parsing fails
		return latestVersion != currentVersion
	}
	return latest.GreaterThan(current)
}

// IsCIEnvironment reports whether the CLI runs inside a CI system. Used to
// suppress update banners and interactive prompts.
func IsCIEnvironment() bool {
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return true
	}
	markers := []string{
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"BUILDKITE",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"TEAMCITY_VERSION",
	}
	for _, marker := range markers {
		if os.Getenv(marker) != "" {
			return true
		}
	}
	return false
}

var envFiles []string
var config Config
var workspace string
var environment string
var apiURL string
var outputFormat string
var client *sdk.Client
var verbose bool
var version string
var commit string
var date string
var folder string
var skipVersionWarning bool
var commandSecrets []string
var rootCmd = &cobra.Command{
	Use:   "infisical",
	Short: "Infisical CLI fetches and injects secrets from your Infisical workspaces.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !skipVersionWarning && cmd.Name() != "__complete" && cmd.Name() != "completion" {
			checkForUpdates(version)
		}

		setEnvs()
		if apiURL != "" {
			BASE_URL = strings.TrimSuffix(apiURL, "/")
		}
		readSecrets(folder)
		readConfigToml(folder)

		// Flag > infisical.toml > stored context. The environment has a
		// final hardcoded fallback; the workspace stays empty until a login
		// names one.
		if workspace == "" {
			workspace = config.Workspace
		}
		if workspace == "" {
			workspace = sdk.CurrentContext().Workspace
		}
		if environment == "" {
			environment = config.Environment
		}
		if environment == "" {
			environment = sdk.CurrentContext().Environment
		}
		if environment == "" {
			environment = DefaultEnvironment
		}

		if workspace != "" && cmd.Name() != "login" && cmd.Name() != "logout" {
			if !sdk.LoadCredentials(workspace).IsValid() {
				PrintWarning(fmt.Sprintf("No valid credentials for workspace %s", workspace))
				PrintInfoWithCommand("To fix them, run:", fmt.Sprintf("infisical login %s", workspace))
			}
		}
		return nil
	},
}

func setEnvs() {
	if url := os.Getenv("INFISICAL_API_URL"); url != "" {
		BASE_URL = url
	}
	if appURL := os.Getenv("INFISICAL_APP_URL"); appURL != "" {
		APP_URL = appURL
	}
}

func Execute(releaseVersion string, releaseCommit string, releaseDate string) error {
	setEnvs()

	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Specify the workspace name")
	rootCmd.PersistentFlags().StringVarP(&environment, "env", "e", "", "Specify the environment slug (e.g. dev, staging, prod)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format. One of: pretty,yaml,json,table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&folder, "directory", "d", "", "Project path holding infisical.toml, can be a sub directory")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Local env files merged into run and export")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the Infisical API base URL")
	rootCmd.PersistentFlags().BoolVarP(&skipVersionWarning, "skip-version-warning", "", false, "Skip version warning")

	// Add all registered commands to the root command
	for _, cmdFunc := range commandRegistry {
		cmd := cmdFunc()
		if cmd != nil {
			rootCmd.AddCommand(cmd)
		}
	}

	if version == "" {
		version = releaseVersion
	}
	if commit == "" {
		commit = releaseCommit
	}
	if date == "" {
		date = releaseDate
	}
	return rootCmd.Execute()
}

func GetBaseURL() string {
	return BASE_URL
}

func GetAppURL() string {
	return APP_URL
}

func CheckForUpdates(currentVersion string) {
	checkForUpdates(currentVersion)
}

func LoadCommandSecrets(commandSecrets []string) {
	SetCommandSecrets(commandSecrets)
	loadCommandSecrets()
}

func SetCommandSecrets(secrets []string) {
	commandSecrets = secrets
}

func ReadSecrets(folder string, envFiles []string) {
	setEnvFiles(envFiles)
	readSecrets(folder)
}

func setEnvFiles(files []string) {
	envFiles = files
}

func ReadConfigToml(folder string) {
	readConfigToml(folder)
}

func GetConfig() Config {
	return config
}

// GetClient builds (once) and returns the API client for the current
// workspace and environment. It fails when no workspace is selected or the
// workspace has no usable credentials, so commands can print a login hint
// instead of issuing doomed requests.
func GetClient() (*sdk.Client, error) {
	if client != nil {
		return client, nil
	}
	if workspace == "" {
		return nil, fmt.Errorf("no workspace selected, run `infisical login` first")
	}
	credentials := sdk.LoadCredentials(workspace)
	if !credentials.IsValid() {
		return nil, fmt.Errorf("no credentials for workspace %s, run `infisical login %s` first", workspace, workspace)
	}

	c, err := sdk.NewClient(sdk.ClientConfig{
		BaseURL:     BASE_URL,
		Workspace:   workspace,
		Environment: GetEnvironment(),
		Credentials: credentials,
		UserAgent:   fmt.Sprintf("infisical/v%s (%s) infisical/%s", version, sdk.GetOsArch(), shortCommit()),
	})
	if err != nil {
		return nil, err
	}
	client = c
	return client, nil
}

func shortCommit() string {
	if len(commit) > 7 {
		return commit[:7]
	}
	if commit == "" {
		return "unknown"
	}
	return commit
}

// GetWorkspace returns the current workspace
func GetWorkspace() string {
	return workspace
}

// SetWorkspace sets the current workspace
func SetWorkspace(ws string) {
	workspace = ws
	client = nil
}

// GetEnvironment returns the resolved environment slug
func GetEnvironment() string {
	if environment == "" {
		return DefaultEnvironment
	}
	return environment
}

// SetEnvironment sets the current environment slug
func SetEnvironment(env string) {
	environment = env
	client = nil
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	return outputFormat
}

func GetVerbose() bool {
	return verbose
}

func GetVersion() string {
	return version
}

func GetCommit() string {
	return commit
}

func GetDate() string {
	return date
}

func GetEnvFiles() []string {
	return envFiles
}

func GetCommandSecrets() []string {
	return commandSecrets
}
