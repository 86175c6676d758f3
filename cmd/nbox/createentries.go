package main

import (
	"fmt"
	"os"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	createEntriesType        string
	createEntriesPath        string
	createEntriesNoChangeset bool
)

var createEntriesCmd = &cobra.Command{
	Use:   "create-entries <file>",
	Short: "Bulk-import entries from a file",
	Long: `Bulk-import entries from a file.

Two input formats are supported:
  nbox    a JSON list of {"key", "value", "secure"} objects
  dotenv  a KEY=VALUE environment file; requires --path, and prompts
          for which variables should be stored as secure entries

Before writing, every draft is compared against the store's current
value and shown as an old/new changeset for confirmation. Pass
--no-changeset to skip the per-entry lookups and preview the drafts
as-is. All entries are written in a single batch call.

Examples:
  nbox create-entries entries.json
  nbox create-entries .env --type dotenv --path app/env
  nbox create-entries entries.json --no-changeset`,
	Args: cobra.ExactArgs(1),
	RunE: runCreateEntries,
}

func init() {
	createEntriesCmd.Flags().StringVar(&createEntriesType, "type", "nbox", "input format: 'nbox' or 'dotenv'")
	createEntriesCmd.Flags().StringVar(&createEntriesPath, "path", "", "path prefix for dotenv keys")
	createEntriesCmd.Flags().BoolVar(&createEntriesNoChangeset, "no-changeset", false, "skip the old/new changeset preview")
	createEntriesCmd.Flags().SetNormalizeFunc(normalizeLegacyFlags)
}

// normalizeLegacyFlags accepts the doubled-dash spelling of no-changeset
// that earlier releases shipped.
func normalizeLegacyFlags(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "no--changeset" {
		name = "no-changeset"
	}
	return pflag.NormalizedName(name)
}

func runCreateEntries(cmd *cobra.Command, args []string) error {
	format := nbox.ImportFormat(createEntriesType)

	// usage errors fail before the file or the network is touched
	if !format.Valid() {
		return fmt.Errorf("%w: no valid input option provided, use --help to view available options", nbox.ErrInvalidInput)
	}
	if format == nbox.FormatDotenv && createEntriesPath == "" {
		return fmt.Errorf("%w: you must provide an nbox path in order to use an environment file", nbox.ErrBasePathRequired)
	}

	client, err := getClient(cmd)
	if err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s does not exist", args[0])
		}
		return err
	}
	defer func() { _ = file.Close() }()

	imp := &nbox.Importer{
		Store:        client,
		Render:       renderChangeset,
		Confirm:      confirmProceed,
		SelectSecure: selectSecureFields,
	}

	if !createEntriesNoChangeset {
		fmt.Println("Creating changeset...")
	}

	n, err := imp.Run(cmd.Context(), file, nbox.ImportOptions{
		Format:      format,
		BasePath:    createEntriesPath,
		NoChangeset: createEntriesNoChangeset,
	})
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Entries created successfully: %d", n))
	return nil
}
