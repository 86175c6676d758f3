package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func printSuccess(msg string) {
	fmt.Println(successStyle.Render("✅ " + msg))
}

func printError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("❌ "+msg))
}

func printWarning(msg string) {
	fmt.Println(warningStyle.Render("❌ " + msg))
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// renderEntryTable prints entries as a KEY/VALUE/SECURE table.
func renderEntryTable(entries []clientcli.ListedEntry) {
	t := newTable("KEY", "VALUE", "SECURE")
	for _, e := range entries {
		value := nbox.FormatValue(e.Value)
		if e.DecryptionError != "" {
			value = fmt.Sprintf("%s (decryption error: %s)", value, e.DecryptionError)
		}
		t.Row(e.Key, value, fmt.Sprint(e.Secure))
	}
	fmt.Println(t)
}

// renderChangeset prints the rows the user confirms against. withOld adds
// the OLD VALUE column; the no-changeset fast path omits it.
func renderChangeset(rows []nbox.ChangesetRow, withOld bool) error {
	var t *table.Table
	if withOld {
		t = newTable("KEY", "OLD VALUE", "NEW VALUE", "SECURE")
		for _, r := range rows {
			t.Row(r.Key, r.OldValue, nbox.FormatValue(r.NewValue), fmt.Sprint(r.Secure))
		}
	} else {
		t = newTable("KEY", "VALUE", "SECURE")
		for _, r := range rows {
			t.Row(r.Key, nbox.FormatValue(r.NewValue), fmt.Sprint(r.Secure))
		}
	}
	fmt.Println(t)
	return nil
}
