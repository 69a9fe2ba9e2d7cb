package core

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"
)

// SecretRow is one rendered secret. Values stay verbatim, rendering only
// truncates them in the table view when the terminal is too narrow.
type SecretRow struct {
	Key   string
	Value string
}

// getValueColumnWidth calculates the optimal width for the value column based on terminal size
func getValueColumnWidth(keyWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		// Fallback to default if we can't get terminal size
		return 100
	}

	// Key column plus separators and padding
	usedSpace := keyWidth + 10

	availableSpace := width - usedSpace

	minWidth := 15
	maxWidth := 100

	if availableSpace < minWidth {
		return minWidth
	}
	if availableSpace > maxWidth {
		return maxWidth
	}

	return availableSpace
}

// Output renders secret rows in the requested format. Rows are sorted by
// key so repeated calls against the same environment diff cleanly.
func Output(rows []SecretRow, outputFormat string) {
	sortedRows := sortByKey(rows)

	if outputFormat == "pretty" {
		printPretty(sortedRows)
		return
	}
	if outputFormat == "yaml" {
		printYaml(sortedRows)
		return
	}
	if outputFormat == "json" {
		printJson(sortedRows)
		return
	}
	printTable(sortedRows)
}

// truncateString truncates a string to the specified max length with ellipsis
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}

func printTable(rows []SecretRow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"KEY", "VALUE"})

	keyWidth := 0
	for _, row := range rows {
		if len(row.Key) > keyWidth {
			keyWidth = len(row.Key)
		}
	}
	valueWidth := getValueColumnWidth(keyWidth)

	for _, row := range rows {
		t.AppendRow(table.Row{row.Key, truncateString(row.Value, valueWidth)})
	}
	// Render the table - this automatically sizes columns based on content
	t.Render()
}

func printJson(rows []SecretRow) {
	formatted := map[string]string{}
	for _, row := range rows {
		formatted[row.Key] = row.Value
	}

	jsonData, err := json.MarshalIndent(formatted, "", "  ")
	if err != nil {
		fmt.Println(err)
		ExitWithError(err)
	}
	fmt.Println(string(jsonData))
}

func printYaml(rows []SecretRow) {
	fmt.Print(string(renderYaml(rows)))
}

// renderYaml keeps the sorted row order, which a plain map marshal would lose.
func renderYaml(rows []SecretRow) []byte {
	formatted := yaml.MapSlice{}
	for _, row := range rows {
		formatted = append(formatted, yaml.MapItem{Key: row.Key, Value: row.Value})
	}

	yamlData, err := yaml.Marshal(formatted)
	if err != nil {
		fmt.Println(err)
		ExitWithError(err)
	}
	return yamlData
}

func printPretty(rows []SecretRow) {
	keyColor := color.New(color.FgBlue).SprintFunc()
	valueColor := color.New(color.FgGreen).SprintFunc()

	for _, row := range rows {
		fmt.Printf("%s: %s\n", keyColor(row.Key), valueColor(row.Value))
	}
}

// sortByKey sorts rows alphabetically without modifying the caller's slice
func sortByKey(rows []SecretRow) []SecretRow {
	sortedRows := make([]SecretRow, len(rows))
	copy(sortedRows, rows)

	sort.Slice(sortedRows, func(i, j int) bool {
		return sortedRows[i].Key < sortedRows[j].Key
	})

	return sortedRows
}

// RowsFromMap converts a fetched secrets map into renderable rows.
func RowsFromMap(values map[string]string) []SecretRow {
	rows := make([]SecretRow, 0, len(values))
	for k, v := range values {
		rows = append(rows, SecretRow{Key: k, Value: v})
	}
	return rows
}
