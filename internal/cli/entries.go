package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/worklog"
)

var (
	entryUser    string
	entryDate    string
	entryTask    string
	entryHours   float64
	entryDetails string
	entryID      string
	clearPasskey string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a work entry",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show an account's entries grouped by date",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit an existing entry",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove an entry",
	Args:  cobra.NoArgs,
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry for an account (irreversible)",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the distinct task names for an account",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	addCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	addCmd.Flags().StringVar(&entryDate, "date", "", "Entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&entryTask, "task", "", "Task name")
	addCmd.Flags().Float64Var(&entryHours, "hours", 0, "Hours worked")
	addCmd.Flags().StringVar(&entryDetails, "details", "", "Free-text details")
	_ = addCmd.MarkFlagRequired("user")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("task")

	listCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	_ = listCmd.MarkFlagRequired("user")

	updateCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	updateCmd.Flags().StringVar(&entryID, "id", "", "Entry id")
	updateCmd.Flags().StringVar(&entryDate, "date", "", "New date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&entryTask, "task", "", "New task name")
	updateCmd.Flags().Float64Var(&entryHours, "hours", 0, "New hours")
	updateCmd.Flags().StringVar(&entryDetails, "details", "", "New details")
	_ = updateCmd.MarkFlagRequired("user")
	_ = updateCmd.MarkFlagRequired("id")

	deleteCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	deleteCmd.Flags().StringVar(&entryID, "id", "", "Entry id")
	_ = deleteCmd.MarkFlagRequired("user")
	_ = deleteCmd.MarkFlagRequired("id")

	clearCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	clearCmd.Flags().StringVar(&clearPasskey, "passkey", "", "Passkey, re-checked before clearing")
	_ = clearCmd.MarkFlagRequired("user")
	_ = clearCmd.MarkFlagRequired("passkey")

	tasksCmd.Flags().StringVar(&entryUser, "user", "", "Account username")
	_ = tasksCmd.MarkFlagRequired("user")
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		e, err := a.Entries.Add(entryUser, worklog.Draft{
			Date:    entryDate,
			Task:    entryTask,
			Hours:   entryHours,
			Details: entryDetails,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s: %s %.2fh (%s)\n", e.Date, e.Task, e.Hours, e.ID)
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		entries, err := a.Entries.List(entryUser)
		if err != nil {
			return err
		}
		printGrouped(entries)
		return nil
	})
}

// printGrouped renders entries grouped by date, newest day first. Grouping
// and ordering are presentation only; the store keeps insertion order.
func printGrouped(entries []worklog.Entry) {
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}

	byDate := make(map[string][]worklog.Entry)
	for _, e := range entries {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, d := range dates {
		var dayTotal float64
		for _, e := range byDate[d] {
			dayTotal += e.Hours
		}
		fmt.Printf("%s (%.2fh)\n", d, dayTotal)
		for _, e := range byDate[d] {
			line := fmt.Sprintf("  %-24s %5.2fh", e.Task, e.Hours)
			if e.Details != "" {
				line += "  " + e.Details
			}
			fmt.Printf("%s  [%s]\n", line, e.ID)
		}
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		entries, err := a.Entries.List(entryUser)
		if err != nil {
			return err
		}
		var current *worklog.Entry
		for i := range entries {
			if entries[i].ID == entryID {
				current = &entries[i]
				break
			}
		}
		if current == nil {
			fmt.Printf("No entry with id %s.\n", entryID)
			return nil
		}

		// Only flags the caller actually set overwrite the stored fields.
		merged := *current
		if cmd.Flags().Changed("date") {
			merged.Date = entryDate
		}
		if cmd.Flags().Changed("task") {
			merged.Task = entryTask
		}
		if cmd.Flags().Changed("hours") {
			merged.Hours = entryHours
		}
		if cmd.Flags().Changed("details") {
			merged.Details = entryDetails
		}

		if err := a.Entries.Update(entryUser, merged); err != nil {
			if errors.Is(err, worklog.ErrNotFound) {
				fmt.Printf("No entry with id %s.\n", entryID)
				return nil
			}
			return err
		}
		fmt.Println("Entry updated.")
		return nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		if err := a.Entries.Delete(entryUser, entryID); err != nil {
			return err
		}
		fmt.Println("Entry removed.")
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		// Clearing is gated behind a fresh passkey check; the store itself
		// does not enforce this.
		ok, err := a.Accounts.Verify(entryUser, clearPasskey)
		if err != nil {
			return err
		}
		if !ok {
			_ = a.Audit.Failure(entryUser, "clear-entries", entryUser, "passkey check failed")
			fmt.Println("Invalid username or passkey.")
			return nil
		}
		if err := a.Entries.Clear(entryUser); err != nil {
			return err
		}
		_ = a.Audit.Success(entryUser, "clear-entries", entryUser, "")
		fmt.Printf("All entries for %q removed.\n", entryUser)
		return nil
	})
}

func runTasks(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		tasks, err := a.Entries.Tasks(entryUser)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			fmt.Println(t)
		}
		return nil
	})
}
