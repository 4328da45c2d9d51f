package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"worktrackersvr/work-tracker/internal/app"
	"worktrackersvr/work-tracker/internal/export"
)

var (
	exportUser  string
	exportFrom  string
	exportTo    string
	exportTasks []string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export work entries to a downloadable document",
}

var exportExcelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Write a filtered .xlsx work log with a Total row",
	Args:  cobra.NoArgs,
	RunE:  runExportExcel,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Write the full entry list as pretty-printed JSON",
	Args:  cobra.NoArgs,
	RunE:  runExportJSON,
}

func init() {
	exportExcelCmd.Flags().StringVar(&exportUser, "user", "", "Account username")
	exportExcelCmd.Flags().StringVar(&exportFrom, "from", "", "Range start (YYYY-MM-DD, inclusive)")
	exportExcelCmd.Flags().StringVar(&exportTo, "to", "", "Range end (YYYY-MM-DD, inclusive)")
	exportExcelCmd.Flags().StringSliceVar(&exportTasks, "task", nil, "Task filter, repeatable; omit for all tasks")
	_ = exportExcelCmd.MarkFlagRequired("user")
	_ = exportExcelCmd.MarkFlagRequired("from")
	_ = exportExcelCmd.MarkFlagRequired("to")

	exportJSONCmd.Flags().StringVar(&exportUser, "user", "", "Account username")
	_ = exportJSONCmd.MarkFlagRequired("user")

	exportCmd.AddCommand(exportExcelCmd)
	exportCmd.AddCommand(exportJSONCmd)
}

func runExportExcel(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		artifact, err := a.Exports.Excel(exportUser, exportFrom, exportTo, exportTasks)
		if err != nil {
			if errors.Is(err, export.ErrEmptyResultSet) {
				fmt.Println("No data found for the selected date range.")
				return nil
			}
			return err
		}
		return writeArtifact(a, artifact, "export-excel")
	})
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App) error {
		artifact, err := a.Exports.JSON(exportUser)
		if err != nil {
			if errors.Is(err, export.ErrEmptyResultSet) {
				fmt.Println("No entries to export.")
				return nil
			}
			return err
		}
		return writeArtifact(a, artifact, "export-json")
	})
}

func writeArtifact(a *app.App, artifact export.Artifact, action string) error {
	path := filepath.Join(a.ExportDir(), artifact.Filename)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	_ = a.Audit.Success(exportUser, action, exportUser, artifact.Filename)
	fmt.Printf("Wrote %s\n", path)
	return nil
}
