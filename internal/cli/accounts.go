package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/directory"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Administer the account directory",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List usernames (passkeys are never shown)",
	Args:  cobra.NoArgs,
	RunE:  runAccountsList,
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create <username> <passkey>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsCreate,
}

var accountsResetCmd = &cobra.Command{
	Use:   "reset-passkey <username> <new-passkey>",
	Short: "Overwrite an existing account's passkey",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsReset,
}

func init() {
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsCreateCmd)
	accountsCmd.AddCommand(accountsResetCmd)
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		usernames, err := a.Accounts.List()
		if err != nil {
			return err
		}
		for _, u := range usernames {
			fmt.Println(u)
		}
		return nil
	})
}

func runAccountsCreate(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		username := args[0]
		if err := a.Accounts.Create(username, args[1]); err != nil {
			if errors.Is(err, directory.ErrDuplicateAccount) {
				_ = a.Audit.Failure(username, "create-account", username, "duplicate username")
				fmt.Printf("Username %q already exists.\n", username)
				return nil
			}
			return err
		}
		_ = a.Audit.Success(username, "create-account", username, "")
		fmt.Printf("Account %q created.\n", username)
		return nil
	})
}

func runAccountsReset(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		username := args[0]
		ok, err := a.Accounts.ResetPasskey(username, args[1])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No account named %q.\n", username)
			return nil
		}
		_ = a.Audit.Success(directory.AdminUsername, "reset-passkey", username, "")
		fmt.Printf("Passkey for %q updated.\n", username)
		return nil
	})
}
