package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// GetHuhTheme returns a custom theme configuration for the CLI interface using the Dracula color scheme.
// It customizes various UI elements like buttons, text inputs, and selection indicators.
func GetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	var (
		background = lipgloss.AdaptiveColor{Dark: "#282a36"}
		selection  = lipgloss.AdaptiveColor{Dark: "#44475a"}
		foreground = lipgloss.AdaptiveColor{Dark: "#f8f8f2"}
		comment    = lipgloss.AdaptiveColor{Dark: "#6272a4"}
		green      = lipgloss.AdaptiveColor{Dark: "#50fa7b"}
		orange     = lipgloss.AdaptiveColor{Dark: "#fd7b35"}
		red        = lipgloss.AdaptiveColor{Dark: "#ff5555"}
		yellow     = lipgloss.AdaptiveColor{Dark: "#f1fa8c"}
	)

	t.Focused.Base = t.Focused.Base.BorderForeground(selection)
	t.Focused.Title = t.Focused.Title.Foreground(orange)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(orange)
	t.Focused.Description = t.Focused.Description.Foreground(comment)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.Directory = t.Focused.Directory.Foreground(orange)
	t.Focused.File = t.Focused.File.Foreground(foreground)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(yellow)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(yellow)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(yellow)
	t.Focused.Option = t.Focused.Option.Foreground(foreground)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(yellow)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(green).SetString("[✓] ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(foreground)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(comment)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(yellow).Background(orange).Bold(true)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(foreground).Background(background)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(yellow)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(comment)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(yellow)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(comment)
	t.Blurred.NextIndicator = t.Blurred.NextIndicator.Foreground(comment)
	t.Blurred.PrevIndicator = t.Blurred.PrevIndicator.Foreground(comment)

	t.Blurred.TextInput.Prompt = t.Blurred.TextInput.Prompt.Foreground(comment)
	t.Blurred.TextInput.Text = t.Blurred.TextInput.Text.Foreground(foreground)

	t.Help.ShortKey = t.Help.ShortKey.Foreground(comment)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(foreground)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(comment)
	t.Help.FullKey = t.Help.FullKey.Foreground(comment)
	t.Help.FullDesc = t.Help.FullDesc.Foreground(foreground)
	t.Help.FullSeparator = t.Help.FullSeparator.Foreground(comment)

	return t
}

// PrintError prints a formatted error message with colors
func PrintError(operation string, err error) {
	// Print error header with red color and bold
	Print(fmt.Sprintf("%s %s\n",
		color.New(color.FgRed, color.Bold).Sprint("✗"),
		color.New(color.FgRed, color.Bold).Sprintf("%s failed", operation)))

	// Print reason with lighter red color
	Print(fmt.Sprintf("%s %s\n",
		color.New(color.FgRed).Sprint("Reason:"),
		color.New(color.FgWhite).Sprint(err.Error())))
}

// PrintWarning prints a formatted warning message with colors
func PrintWarning(message string) {
	Print(fmt.Sprintf("%s %s\n",
		color.New(color.FgYellow, color.Bold).Sprint("⚠"),
		color.New(color.FgYellow).Sprint(message)))
}

// PrintSuccess prints a formatted success message with colors
func PrintSuccess(message string) {
	Print(fmt.Sprintf("%s %s\n",
		color.New(color.FgGreen, color.Bold).Sprint("✓"),
		color.New(color.FgGreen).Sprint(message)))
}

func PrintInfo(message string) {
	Print(fmt.Sprintf("%s %s\n",
		color.New(color.FgBlue, color.Bold).Sprint("ℹ"),
		color.New(color.FgBlue).Sprint(message)))
}

// PrintInfoWithCommand prints an info message followed by a command in white
func PrintInfoWithCommand(message string, command string) {
	Print(fmt.Sprintf("%s %s %s\n",
		color.New(color.FgBlue, color.Bold).Sprint("ℹ"),
		color.New(color.FgBlue).Sprint(message),
		color.New(color.FgWhite, color.Bold).Sprint(command)))
}

func Print(message string) {
	message = strings.TrimSuffix(message, "\n")
	fmt.Println(message)
}

// Slugify converts a string to a URL-safe slug format
// Example: "My Workspace 123!" -> "my-workspace-123"
func Slugify(s string) string {
	// Convert to lowercase
	s = strings.ToLower(s)

	// Replace spaces and underscores with hyphens
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	// Remove any character that's not alphanumeric or hyphen
	re := regexp.MustCompile(`[^a-z0-9\-]+`)
	s = re.ReplaceAllString(s, "")

	// Remove consecutive hyphens
	re = regexp.MustCompile(`\-+`)
	s = re.ReplaceAllString(s, "-")

	// Trim hyphens from start and end
	s = strings.Trim(s, "-")

	return s
}
