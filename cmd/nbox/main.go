package main

import (
	"errors"
	"fmt"
	"os"

	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:     "nbox",
	Version: version,
	Short:   "Client for the nbox key/value secrets store",
	Long: `nbox - Client for the nbox key/value secrets and config store

Entries are slash-delimited key paths with a value and a secure flag.
Secure entries store a reference to an encrypted secret; pass --decrypt
on read commands to resolve the plaintext.

Run 'nbox config' once to set the store URL, then 'nbox login' to obtain
and save an authentication token.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "credentials file (default: ~/.config/nboxcli/credentials)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(getEntryCmd)
	rootCmd.AddCommand(getPathCmd)
	rootCmd.AddCommand(createEntryCmd)
	rootCmd.AddCommand(createEntriesCmd)
	rootCmd.AddCommand(removeEntryCmd)
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// User-declined confirmations are clean aborts, not failures.
	if errors.Is(err, nbox.ErrCancelled) {
		printWarning("Operation cancelled")
		os.Exit(0)
	}

	if clientcli.IsTokenExpired(err) {
		printError("Your authentication token has expired. Please run 'nbox login' again.")
		os.Exit(1)
	}

	printError(fmt.Sprintf("Error: %v", err))
	os.Exit(1)
}

// configPath resolves the credentials file location from the flag or the
// default.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return clientcli.DefaultConfigPath()
}

// loadConfig loads the persisted credentials plus environment overrides.
func loadConfig() (*clientcli.Config, error) {
	return clientcli.LoadConfig(configPath())
}

// getClient builds the entry store client from the saved credentials and
// probes the server so a bad token fails before any real work.
func getClient(cmd *cobra.Command) (*clientcli.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := clientcli.New(cfg)
	if err != nil {
		return nil, err
	}

	if err := client.ValidateToken(cmd.Context()); err != nil {
		return nil, err
	}

	return client, nil
}
