package main

import (
	"errors"
	"fmt"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/spf13/cobra"
)

var removeEntrySkipConfirmation bool

var removeEntryCmd = &cobra.Command{
	Use:   "remove-entry <key>",
	Short: "Delete an entry",
	Long: `Delete the entry stored at a key.

The entry is shown and confirmed before deletion unless
--skip-confirmation is set.

Examples:
  nbox remove-entry app/db-host
  nbox remove-entry app/db-host --skip-confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: runRemoveEntry,
}

func init() {
	removeEntryCmd.Flags().BoolVar(&removeEntrySkipConfirmation, "skip-confirmation", false, "delete without confirmation (CAREFUL!)")
}

func runRemoveEntry(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := clientcli.New(cfg)
	if err != nil {
		return err
	}

	entry, err := client.EntryByKey(cmd.Context(), key)
	if err != nil {
		if errors.Is(err, nbox.ErrNotFound) {
			return errors.New("no entry with this key found")
		}
		return err
	}

	if !removeEntrySkipConfirmation {
		fmt.Println("You are about to remove the following entry:")
		t := newTable("KEY", "VALUE", "SECURE")
		t.Row(entry.Key, nbox.FormatValue(entry.Value), fmt.Sprint(entry.Secure))
		fmt.Println(t)

		ok, err := confirmProceed()
		if err != nil {
			return err
		}
		if !ok {
			return nbox.ErrCancelled
		}
	}

	if err := client.DeleteEntry(cmd.Context(), key); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Entry removed successfully: %s", key))
	return nil
}
