package main

import (
	"errors"
	"fmt"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/spf13/cobra"
)

var (
	getEntryDecrypt bool
	getEntryOutput  string
)

var getEntryCmd = &cobra.Command{
	Use:   "get-entry <key>",
	Short: "Read a single entry",
	Long: `Read the entry stored at a key.

For secure entries the stored value is a secret reference; pass --decrypt
to resolve the plaintext instead.

Examples:
  nbox get-entry app/db-host
  nbox get-entry app/db-pass --decrypt
  nbox get-entry app/db-host -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runGetEntry,
}

func init() {
	getEntryCmd.Flags().BoolVarP(&getEntryDecrypt, "decrypt", "d", false, "decrypt a secure value")
	getEntryCmd.Flags().StringVarP(&getEntryOutput, "output", "o", "table", "output format: 'table' or 'json'")
}

func runGetEntry(cmd *cobra.Command, args []string) error {
	if err := validateOutputType(getEntryOutput); err != nil {
		return err
	}
	key := args[0]

	client, err := getClient(cmd)
	if err != nil {
		return err
	}

	if getEntryDecrypt {
		return showSecret(cmd, client, key)
	}
	return showEntry(cmd, client, key)
}

func showEntry(cmd *cobra.Command, client *clientcli.Client, key string) error {
	entry, err := client.EntryByKey(cmd.Context(), key)
	if err != nil {
		if errors.Is(err, nbox.ErrNotFound) {
			return fmt.Errorf("no entry found with key: %s", key)
		}
		return err
	}

	if getEntryOutput == "json" {
		return printJSON(entry)
	}

	printSuccess("Parsed entry")
	renderEntryTable([]clientcli.ListedEntry{{Entry: *entry}})
	return nil
}

func showSecret(cmd *cobra.Command, client *clientcli.Client, key string) error {
	secret, err := client.SecretByKey(cmd.Context(), key)
	if err != nil {
		if errors.Is(err, nbox.ErrNotFound) {
			return fmt.Errorf("no secret found with key: %s", key)
		}
		return err
	}

	if getEntryOutput == "json" {
		return printJSON(secret)
	}

	printSuccess("Parsed secret")
	t := newTable("KEY", "VALUE")
	t.Row(key, nbox.FormatValue(secret.Value))
	fmt.Println(t)
	return nil
}

func validateOutputType(output string) error {
	if output != "table" && output != "json" {
		return errors.New("format unavailable, only table or json supported")
	}
	return nil
}
