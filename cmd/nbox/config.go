package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	nbox "github.com/nbox-sh/nbox-cli"
	"github.com/nbox-sh/nbox-cli/clientcli"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Set the nbox store URL",
	Long: `Set the nbox store URL interactively.

The URL is written to the credentials file, replacing its previous
contents. Run 'nbox login' afterwards to obtain a token.

The connection is tested before saving; an unreachable server can still
be saved after an extra confirmation.`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, _ []string) error {
	fmt.Println("Setting config")

	nboxURL, err := promptFor("NBOX URL", 0, func(input string) error {
		cfg := clientcli.Config{URL: strings.TrimSuffix(input, "/")}
		return cfg.Validate()
	})
	if err != nil {
		return handlePromptError(err)
	}
	nboxURL = strings.TrimSuffix(nboxURL, "/")

	fmt.Print("Testing connection... ")
	if connErr := testServerConnection(cmd.Context(), nboxURL); connErr != nil {
		fmt.Println("FAILED")
		printWarning(fmt.Sprintf("Could not connect to server: %v", connErr))

		continuePrompt := promptui.Prompt{
			Label:     "Save config anyway",
			IsConfirm: true,
		}
		if _, promptErr := continuePrompt.Run(); promptErr != nil {
			return handlePromptError(promptErr)
		}
	} else {
		fmt.Println("OK")
	}

	cfg := &clientcli.Config{URL: nboxURL}
	if err := cfg.Save(configPath()); err != nil {
		return err
	}

	printSuccess("Config successfully saved")
	return nil
}

// testServerConnection checks that the URL answers HTTP at all. Any
// response counts, a 401 just means the server is up and wants a token.
func testServerConnection(ctx context.Context, serverURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return nil
}

// handlePromptError maps promptui cancellation to the clean-abort path.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		return nbox.ErrCancelled
	}
	return err
}
