package auth

import (
	"fmt"
	"os"

	"github.com/crucial707/hci-ledger/cmd/cli/client"
	"github.com/crucial707/hci-ledger/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers login and logout on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd())
}

// loginCmd exchanges the shared API token for a JWT and stores it locally.
func loginCmd() *cobra.Command {
	var username string
	var apiToken string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the ledger API",
		Long: `Exchange the shared API token for a JWT naming you as the actor.
The API token can also be given with HCI_LEDGER_API_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}
			if apiToken == "" {
				apiToken = os.Getenv("HCI_LEDGER_API_TOKEN")
			}
			if apiToken == "" {
				return fmt.Errorf("api token is required")
			}

			var out struct {
				Token     string `json:"token"`
				ExpiresAt string `json:"expiresAt"`
			}
			payload := map[string]string{"username": username, "apiToken": apiToken}
			if err := client.PostAnonymous("/auth/token", payload, &out); err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if out.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Logged in as %s. Token expires %s.\n", username, out.ExpiresAt)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Name recorded as the actor of your changes")
	cmd.Flags().StringVar(&apiToken, "api-token", "", "Shared API token")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DeleteToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
