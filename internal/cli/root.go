package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "worklog",
	Short: "Work-hour logging store and shell",
	Long: `worklog records dated task entries per account and exports them to
spreadsheet or JSON form. State lives in JSON files under ./data, or in
Postgres when DATABASE_URL is set.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// withApp loads configuration, wires the store (seeding on the way), runs
// fn, and releases the database handle when one is open.
func withApp(fn func(*app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		_ = a.Close()
	}()
	return fn(a)
}
