package main

import (
	"fmt"

	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save an authentication token",
	Long: `Log in to the nbox store with a username and password.

Whichever of the two is not passed as a flag is prompted for; the
password prompt is masked. On success the returned bearer token is
written to the credentials file alongside the store URL.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	fmt.Println("Login to Nbox")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.URL == "" {
		return clientcli.ErrNoURL
	}

	username := loginUsername
	if username == "" {
		username, err = promptFor("Username", 0, nil)
		if err != nil {
			return handlePromptError(err)
		}
	}

	password := loginPassword
	if password == "" {
		password, err = promptFor("Password", '*', nil)
		if err != nil {
			return handlePromptError(err)
		}
	}

	token, err := clientcli.Login(cmd.Context(), cfg.URL, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cfg.Token = token
	if err := cfg.Save(configPath()); err != nil {
		return err
	}

	printSuccess("Login successful! Token saved.")
	return nil
}
