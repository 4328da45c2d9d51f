package seed

import (
	"errors"
	"fmt"

	"worktrackersvr/work-tracker/internal/directory"
	"worktrackersvr/work-tracker/internal/worklog"
)

const (
	AdminPasskey    = "cosmos"
	DefaultUsername = "Amith"
	DefaultPasskey  = "cosmos"
)

// EntryMerger is the slice of the entry store seeding needs.
type EntryMerger interface {
	Merge(username string, drafts []worklog.Draft) (int, error)
}

// Seeder guarantees the admin and default demo accounts exist and merges the
// demonstration entries into the default account. Running it again is a
// no-op: accounts are only created when absent, and the bundle is deduped on
// (task, date, details).
type Seeder struct {
	Accounts *directory.Service
	Entries  EntryMerger
}

// Result reports what a seeding pass actually changed.
type Result struct {
	AdminCreated   bool
	DefaultCreated bool
	EntriesAdded   int
}

func (s Seeder) Run() (Result, error) {
	var res Result

	created, err := s.ensureAccount(directory.AdminUsername, AdminPasskey)
	if err != nil {
		return res, fmt.Errorf("seed admin account: %w", err)
	}
	res.AdminCreated = created

	created, err = s.ensureAccount(DefaultUsername, DefaultPasskey)
	if err != nil {
		return res, fmt.Errorf("seed default account: %w", err)
	}
	res.DefaultCreated = created

	added, err := s.Entries.Merge(DefaultUsername, Bundle())
	if err != nil {
		return res, fmt.Errorf("seed default entries: %w", err)
	}
	res.EntriesAdded = added

	return res, nil
}

func (s Seeder) ensureAccount(username, passkey string) (bool, error) {
	err := s.Accounts.Create(username, passkey)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, directory.ErrDuplicateAccount) {
		return false, nil
	}
	return false, err
}

// Bundle returns the fixed demonstration entries merged into the default
// account on startup.
func Bundle() []worklog.Draft {
	return []worklog.Draft{
		{Date: "2025-12-03", Task: "Substance Load", Hours: 3, Details: "Created custom fields and loaded list types with required values"},
		{Date: "2025-12-03", Task: "Substance Load", Hours: 2, Details: "Troubleshot SDK error (Name not passed in CAS, CAS Number issue)"},
		{Date: "2025-12-04", Task: "Substance Load", Hours: 1, Details: "Edited existing fields and created new fields"},
		{Date: "2025-12-04", Task: "Substance Load", Hours: 3, Details: "Developed test script for Substance Load"},
		{Date: "2025-12-05", Task: "Substance Load", Hours: 5, Details: "Created load script for Substance Load"},
		{Date: "2025-12-05", Task: "Substance Load", Hours: 3, Details: "Troubleshot SDK for updating existing CAS"},
		{Date: "2025-12-05", Task: "Substance Load", Hours: 3, Details: "Tested APIs for updating existing CAS"},
		{Date: "2025-12-05", Task: "Substance Load", Hours: 6, Details: "Reworked load script to include APIs with SDK (hybrid approach)"},
		{Date: "2025-12-05", Task: "Substance Load", Hours: 4, Details: "Executed Substance Load"},
		{Date: "2025-12-09", Task: "Raw Materials Load", Hours: 4, Details: "Created/updated custom fields and loaded list types"},
		{Date: "2025-12-09", Task: "Raw Materials Load", Hours: 5, Details: "Discussions on dataset and load logic"},
		{Date: "2025-12-10", Task: "Raw Materials Load", Hours: 3, Details: "Troubleshot target parameter (inventory value in CAS)"},
		{Date: "2025-12-10", Task: "Raw Materials Load", Hours: 2, Details: "Resolved issue with large inventory name search"},
		{Date: "2025-12-11", Task: "Raw Materials Load", Hours: 6, Details: "Developed test script for Material Load"},
		{Date: "2025-12-11", Task: "Raw Materials Load", Hours: 5, Details: "Created load script for Material Load"},
		{Date: "2025-12-12", Task: "Raw Materials Load", Hours: 4, Details: "Investigated category field implementation in CAS"},
		{Date: "2025-12-12", Task: "Raw Materials Load", Hours: 2, Details: "Updated load script to include category implementation"},
		{Date: "2025-12-12", Task: "Raw Materials Load", Hours: 1, Details: "Modified raw material name in load script"},
		{Date: "2025-12-12", Task: "Raw Materials Load", Hours: 8, Details: "Executed Raw Material Load (7,837 materials)"},
	}
}
