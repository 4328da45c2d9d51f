package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"worktrackersvr/work-tracker/internal/worklog"
)

var (
	ErrEmptyResultSet  = errors.New("no entries match the requested export")
	ErrInvalidRange    = errors.New("invalid export date range")
	ErrMalformedSource = errors.New("uploaded file is not a valid workbook")
)

// TotalSentinel marks the synthetic aggregate row appended to spreadsheet
// exports. It occupies the Date column, so re-imports can filter it out.
const TotalSentinel = "Total"

// SheetName is the single worksheet written to spreadsheet exports.
const SheetName = "Work Log"

// EntryService is the slice of the entry store the exporter needs.
type EntryService interface {
	List(username string) ([]worklog.Entry, error)
	Add(username string, d worklog.Draft) (worklog.Entry, error)
}

// Artifact is a generated downloadable document.
type Artifact struct {
	Filename string
	Data     []byte
}

type Service struct {
	entries EntryService
}

func NewService(entries EntryService) (*Service, error) {
	if entries == nil {
		return nil, fmt.Errorf("entry service is required")
	}
	return &Service{entries: entries}, nil
}

// Excel exports the account's entries with date falling inside
// [start, end] (both inclusive, whole-day bounds) and, when tasks is
// non-empty, task contained in tasks. A trailing Total row sums the hours of
// the selected set. ErrEmptyResultSet when nothing matches; no artifact is
// produced in that case.
func (s *Service) Excel(username, start, end string, tasks []string) (Artifact, error) {
	startDay, err := time.Parse(worklog.DateLayout, start)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrInvalidRange)
	}
	endDay, err := time.Parse(worklog.DateLayout, end)
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrInvalidRange)
	}

	all, err := s.entries.List(username)
	if err != nil {
		return Artifact{}, fmt.Errorf("load entries: %w", err)
	}

	wanted := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		wanted[t] = struct{}{}
	}

	selected := make([]worklog.Entry, 0, len(all))
	for _, e := range all {
		day, err := time.Parse(worklog.DateLayout, e.Date)
		if err != nil {
			continue
		}
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[e.Task]; !ok {
				continue
			}
		}
		selected = append(selected, e)
	}
	if len(selected) == 0 {
		return Artifact{}, ErrEmptyResultSet
	}

	data, err := buildWorkbook(selected)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename: fmt.Sprintf("WorkLog_%s_%s_to_%s.xlsx", username, start, end),
		Data:     data,
	}, nil
}

// JSON exports the full unfiltered entry list verbatim, pretty-printed, with
// no total row. ErrEmptyResultSet when the account has no entries.
func (s *Service) JSON(username string) (Artifact, error) {
	all, err := s.entries.List(username)
	if err != nil {
		return Artifact{}, fmt.Errorf("load entries: %w", err)
	}
	if len(all) == 0 {
		return Artifact{}, ErrEmptyResultSet
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("encode entries: %w", err)
	}
	return Artifact{
		Filename: fmt.Sprintf("WorkLog_%s.json", username),
		Data:     data,
	}, nil
}

// ImportExcel appends the rows of the workbook's first sheet to the account
// and returns how many were added. Rows missing Date or Task and the Total
// sentinel row are skipped. Import is strictly additive and row-by-row: a
// failure partway through does not roll back rows already appended.
func (s *Service) ImportExcel(username string, data []byte) (int, error) {
	rows, err := parseWorkbook(data)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range rows {
		if r.Date == "" || r.Task == "" || r.Date == TotalSentinel {
			continue
		}
		if _, err := s.entries.Add(username, worklog.Draft{
			Date:    r.Date,
			Task:    r.Task,
			Hours:   r.Hours,
			Details: r.Details,
		}); err != nil {
			return count, fmt.Errorf("append imported row: %w", err)
		}
		count++
	}
	return count, nil
}
