package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"worktrackersvr/work-tracker/internal/worklog"
)

// Column order of the spreadsheet contract. Stable: exports write it and
// imports resolve headers against it.
var columns = []string{"Date", "Task", "Hours", "Details"}

func buildWorkbook(entries []worklog.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("name worksheet: %w", err)
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	total := 0.0
	for i, e := range entries {
		total += e.Hours
		if err := setRow(f, i+2, e.Date, e.Task, e.Hours, e.Details); err != nil {
			return nil, err
		}
	}
	if err := setRow(f, len(entries)+2, TotalSentinel, "", total, ""); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, date, task string, hours float64, details string) error {
	values := []interface{}{date, task, hours, details}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	return nil
}

type importedRow struct {
	Date    string
	Task    string
	Hours   float64
	Details string
}

// parseWorkbook decodes the first sheet of an uploaded workbook into rows,
// mapping columns by header name. Hours that fail to parse default to 0 and
// a missing Details column yields empty details.
func parseWorkbook(data []byte) ([]importedRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedSource)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSource, err)
	}
	if len(rows) == 0 {
		return []importedRow{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}

	out := make([]importedRow, 0, len(rows)-1)
	for _, raw := range rows[1:] {
		r := importedRow{
			Date:    cellValue(raw, cols, "Date"),
			Task:    cellValue(raw, cols, "Task"),
			Details: cellValue(raw, cols, "Details"),
		}
		if h, err := strconv.ParseFloat(cellValue(raw, cols, "Hours"), 64); err == nil {
			r.Hours = h
		}
		out = append(out, r)
	}
	return out, nil
}

func cellValue(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
