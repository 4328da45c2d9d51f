package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/export"
)

var importUser string

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Append entries from a spreadsheet to an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&importUser, "user", "", "Account username")
	_ = importCmd.MarkFlagRequired("user")
}

func runImport(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		count, err := a.Exports.ImportExcel(importUser, data)
		if err != nil {
			if errors.Is(err, export.ErrMalformedSource) {
				_ = a.Audit.Failure(importUser, "import-excel", importUser, "malformed file")
				fmt.Println("Failed to import data. Please check the file format.")
				return nil
			}
			// Rows appended before the failure stay appended; report both.
			_ = a.Audit.Failure(importUser, "import-excel", importUser, fmt.Sprintf("partial import of %d rows", count))
			return fmt.Errorf("import stopped after %d rows: %w", count, err)
		}
		_ = a.Audit.Success(importUser, "import-excel", importUser, fmt.Sprintf("%d rows", count))
		fmt.Printf("Successfully imported %d entries.\n", count)
		return nil
	})
}
