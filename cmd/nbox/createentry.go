package main

import (
	"errors"
	"fmt"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/spf13/cobra"
)

var createEntrySecure bool

var createEntryCmd = &cobra.Command{
	Use:   "create-entry <key> <value>",
	Short: "Create or update a single entry",
	Long: `Create or update a single entry.

The current value at the key, if any, is shown next to the new value and
the write happens only after confirmation.

Examples:
  nbox create-entry app/db-host localhost
  nbox create-entry app/db-pass hunter2 --secure`,
	Args: cobra.ExactArgs(2),
	RunE: runCreateEntry,
}

func init() {
	createEntryCmd.Flags().BoolVarP(&createEntrySecure, "secure", "s", false, "mark entry as secure")
}

func runCreateEntry(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	client, err := getClient(cmd)
	if err != nil {
		return err
	}

	existing, err := client.EntryByKey(cmd.Context(), key)
	if err != nil && !errors.Is(err, nbox.ErrNotFound) {
		return err
	}

	if existing != nil {
		fmt.Println("You are about to update the following entry:")
		t := newTable("KEY", "OLD VALUE", "NEW VALUE", "SECURE")
		t.Row(existing.Key, nbox.FormatValue(existing.Value), value, fmt.Sprint(createEntrySecure))
		fmt.Println(t)
	} else {
		fmt.Println("You are about to create the following entry:")
		t := newTable("KEY", "VALUE", "SECURE")
		t.Row(key, value, fmt.Sprint(createEntrySecure))
		fmt.Println(t)
	}

	ok, err := confirmProceed()
	if err != nil {
		return err
	}
	if !ok {
		return nbox.ErrCancelled
	}

	if err := client.CreateEntry(cmd.Context(), key, value, createEntrySecure); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Entry created successfully: %s", key))
	return nil
}
