package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"worktrackersvr/work-tracker/internal/worklog"
)

func seedTwoEntries(t *testing.T) (*Service, *worklog.Service) {
	t.Helper()

	entries := worklog.NewService()
	if _, err := entries.Add("amith", worklog.Draft{Date: "2025-01-01", Task: "Build", Hours: 2}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if _, err := entries.Add("amith", worklog.Draft{Date: "2025-01-05", Task: "Build", Hours: 3}); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	svc, err := NewService(entries)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	return svc, entries
}

func sheetRows(t *testing.T, data []byte) [][]string {
	t.Helper()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read exported sheet: %v", err)
	}
	return rows
}

func TestExcelRangeFilter(t *testing.T) {
	svc, _ := seedTwoEntries(t)

	artifact, err := svc.Excel("amith", "2025-01-01", "2025-01-03", nil)
	if err != nil {
		t.Fatalf("Excel() error: %v", err)
	}
	if artifact.Filename != "WorkLog_amith_2025-01-01_to_2025-01-03.xlsx" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}

	rows := sheetRows(t, artifact.Data)
	if len(rows) != 3 {
		t.Fatalf("expected header + 1 data row + total, got %d rows", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Task" || rows[0][2] != "Hours" || rows[0][3] != "Details" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2025-01-01" || rows[1][1] != "Build" || rows[1][2] != "2" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
	if rows[2][0] != TotalSentinel || rows[2][2] != "2" {
		t.Fatalf("unexpected total row: %v", rows[2])
	}
}

func TestExcelTaskFilter(t *testing.T) {
	svc, _ := seedTwoEntries(t)

	artifact, err := svc.Excel("amith", "2025-01-01", "2025-01-05", []string{"Build"})
	if err != nil {
		t.Fatalf("Excel() error: %v", err)
	}
	rows := sheetRows(t, artifact.Data)
	if len(rows) != 4 {
		t.Fatalf("expected header + 2 data rows + total, got %d rows", len(rows))
	}
	if rows[3][0] != TotalSentinel || rows[3][2] != "5" {
		t.Fatalf("unexpected total row: %v", rows[3])
	}

	if _, err := svc.Excel("amith", "2025-01-01", "2025-01-05", []string{"Review"}); !errors.Is(err, ErrEmptyResultSet) {
		t.Fatalf("expected ErrEmptyResultSet for unmatched task filter, got %v", err)
	}
}

func TestExcelEmptyRange(t *testing.T) {
	svc, _ := seedTwoEntries(t)

	if _, err := svc.Excel("amith", "2024-01-01", "2024-12-31", nil); !errors.Is(err, ErrEmptyResultSet) {
		t.Fatalf("expected ErrEmptyResultSet, got %v", err)
	}
	if _, err := svc.Excel("amith", "bad-date", "2025-01-05", nil); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestJSONExport(t *testing.T) {
	svc, _ := seedTwoEntries(t)

	artifact, err := svc.JSON("amith")
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if artifact.Filename != "WorkLog_amith.json" {
		t.Fatalf("unexpected filename %q", artifact.Filename)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(artifact.Data, &decoded); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, no total row; got %d", len(decoded))
	}
	for _, key := range []string{"id", "date", "task", "hours", "details", "createdAt"} {
		if _, ok := decoded[0][key]; !ok {
			t.Fatalf("expected field %q in export, got %v", key, decoded[0])
		}
	}
}

func TestJSONExportEmptyAccount(t *testing.T) {
	svc, err := NewService(worklog.NewService())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	if _, err := svc.JSON("nobody"); !errors.Is(err, ErrEmptyResultSet) {
		t.Fatalf("expected ErrEmptyResultSet, got %v", err)
	}
}

func TestImportRoundTrip(t *testing.T) {
	svc, entries := seedTwoEntries(t)

	artifact, err := svc.Excel("amith", "2025-01-01", "2025-01-05", nil)
	if err != nil {
		t.Fatalf("Excel() error: %v", err)
	}

	before, _ := entries.List("amith")
	count, err := svc.ImportExcel("amith", artifact.Data)
	if err != nil {
		t.Fatalf("ImportExcel() error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported rows (total row skipped), got %d", count)
	}

	after, _ := entries.List("amith")
	if len(after) != len(before)+2 {
		t.Fatalf("expected %d entries after import, got %d", len(before)+2, len(after))
	}
	for _, prev := range before {
		found := false
		for _, cur := range after {
			if cur.ID == prev.ID && cur == prev {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("pre-existing entry mutated or lost: %+v", prev)
		}
	}
}

func TestImportSkipsIncompleteRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	cells := [][]interface{}{
		{"Date", "Task", "Hours", "Details"},
		{"2025-02-01", "Build", 2, "kept"},
		{"", "Build", 1, "no date"},
		{"2025-02-02", "", 1, "no task"},
		{"Total", "", 3, ""},
	}
	for r, row := range cells {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("build fixture: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	entries := worklog.NewService()
	svc, err := NewService(entries)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}

	count, err := svc.ImportExcel("amith", buf.Bytes())
	if err != nil {
		t.Fatalf("ImportExcel() error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported row, got %d", count)
	}
	got, _ := entries.List("amith")
	if len(got) != 1 || got[0].Details != "kept" {
		t.Fatalf("unexpected imported entries: %+v", got)
	}
}

func TestImportMalformedSource(t *testing.T) {
	svc, err := NewService(worklog.NewService())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	if _, err := svc.ImportExcel("amith", []byte("definitely not a workbook")); !errors.Is(err, ErrMalformedSource) {
		t.Fatalf("expected ErrMalformedSource, got %v", err)
	}
}
