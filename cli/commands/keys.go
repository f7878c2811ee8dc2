package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/enosislabs/rainy-go/cli/keystore"
)

var (
	keysCreateDescription string
	keysCreateExpiresIn   int
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
	Long: `Manage Rainy API keys.

'set' and 'unset' operate on the local encrypted keystore. 'list',
'create' and 'revoke' call the API and require a stored key or the
RAINY_API_KEY environment variable.`,
}

var keysSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store your API key in the local keystore",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readSecret("Enter API key: ")
		if err != nil {
			return exitWithCode(ExitValidation, err)
		}
		if key == "" {
			return exitWithCode(ExitValidation, fmt.Errorf("API key cannot be empty"))
		}
		if !strings.HasPrefix(key, "ra-") {
			return exitWithCode(ExitValidation, fmt.Errorf("API key must start with 'ra-'"))
		}

		ks, err := keystore.NewKeystore()
		if err != nil {
			return exitWithCode(ExitValidation, err)
		}
		if err := ks.Set(keystore.DefaultKeyName, key); err != nil {
			return exitWithCode(ExitValidation, err)
		}

		fmt.Println("API key stored.")
		return nil
	},
}

var keysUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Remove your API key from the local keystore",
	RunE: func(cmd *cobra.Command, args []string) error {
		ks, err := keystore.NewKeystore()
		if err != nil {
			return exitWithCode(ExitValidation, err)
		}
		if err := ks.Delete(keystore.DefaultKeyName); err != nil {
			if _, ok := err.(*keystore.ErrKeyNotFound); ok {
				fmt.Println("No API key stored.")
				return nil
			}
			return exitWithCode(ExitValidation, err)
		}

		fmt.Println("API key removed.")
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys on the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		keys, err := client.ListAPIKeys(context.Background())
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(keys)
		}

		if len(keys) == 0 {
			fmt.Println("No API keys.")
			return nil
		}
		for _, k := range keys {
			status := "active"
			if !k.IsActive {
				status = "revoked"
			}
			fmt.Printf("%s  %-8s  created %s", k.ID, status, k.CreatedAt.Format("2006-01-02"))
			if k.Description != "" {
				fmt.Printf("  %s", k.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

var keysCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		key, err := client.CreateAPIKey(context.Background(), keysCreateDescription, keysCreateExpiresIn)
		if err != nil {
			return apiError(err)
		}

		if jsonOutput {
			return outputJSON(key)
		}

		fmt.Printf("Created key %s\n", key.ID)
		if key.Key != "" {
			fmt.Printf("Secret (shown once): %s\n", key.Key)
		}
		if key.ExpiresAt != nil {
			fmt.Printf("Expires: %s\n", key.ExpiresAt.Format("2006-01-02"))
		}
		return nil
	},
}

var keysRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		if err := client.DeleteAPIKey(context.Background(), args[0]); err != nil {
			return apiError(err)
		}

		fmt.Printf("Revoked key %s\n", args[0])
		return nil
	},
}

func init() {
	keysCreateCmd.Flags().StringVar(&keysCreateDescription, "description", "", "description for the new key")
	keysCreateCmd.Flags().IntVar(&keysCreateExpiresIn, "expires-in", 0, "expiry in days (0 = never)")

	keysCmd.AddCommand(keysSetCmd, keysUnsetCmd, keysListCmd, keysCreateCmd, keysRevokeCmd)
	rootCmd.AddCommand(keysCmd)
}

// readSecret prompts for a secret without echoing it. Falls back to plain
// line input when stdin is not a terminal (pipes, CI).
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
