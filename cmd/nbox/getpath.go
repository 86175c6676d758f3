package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	getPathDecrypt bool
	getPathOutput  string
)

var getPathCmd = &cobra.Command{
	Use:   "get-path <prefix>",
	Short: "List entries under a path prefix",
	Long: `List every entry stored under a path prefix.

With --decrypt, each secure entry's value is resolved individually; an
entry whose secret fails to resolve is annotated instead of failing the
whole listing.

Examples:
  nbox get-path app/
  nbox get-path app/ --decrypt
  nbox get-path app/ -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGetPath,
}

func init() {
	getPathCmd.Flags().BoolVar(&getPathDecrypt, "decrypt", false, "decrypt secure values")
	getPathCmd.Flags().StringVarP(&getPathOutput, "output", "o", "table", "output format: 'table' or 'json'")
}

func runGetPath(cmd *cobra.Command, args []string) error {
	if err := validateOutputType(getPathOutput); err != nil {
		return err
	}
	prefix := args[0]

	client, err := getClient(cmd)
	if err != nil {
		return err
	}

	entries, err := client.EntriesByPrefix(cmd.Context(), prefix, getPathDecrypt)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("no entries found with prefix: %s", prefix)
	}

	if getPathOutput == "json" {
		return printJSON(entries)
	}

	printSuccess(fmt.Sprintf("Found %d entries", len(entries)))
	renderEntryTable(entries)
	return nil
}
