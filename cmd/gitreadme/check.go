package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check if a gitreadme server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := handleCheck(url); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Server is running!")
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "http://localhost:8080", "Base URL of the server")
	return cmd
}

func handleCheck(baseURL string) error {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/health")
	if err != nil {
		return fmt.Errorf("server is not running: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned non-OK status: %d", resp.StatusCode)
	}
	return nil
}
