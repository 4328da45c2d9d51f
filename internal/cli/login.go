package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/directory"
)

var loginCmd = &cobra.Command{
	Use:   "login <username> <passkey>",
	Short: "Verify credentials and show where the account routes",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		ok, err := a.Accounts.Verify(args[0], args[1])
		if err != nil {
			return err
		}
		if !ok {
			// Deliberately generic: does not reveal whether the username exists.
			fmt.Println("Invalid username or passkey.")
			return nil
		}
		switch directory.RoleOf(args[0]) {
		case directory.RoleAdmin:
			fmt.Printf("Welcome %s. You have the administration view.\n", args[0])
		default:
			fmt.Printf("Welcome %s. You have the personal dashboard.\n", args[0])
		}
		return nil
	})
}
