package worklog

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGService is the Postgres-backed entry store with the same surface as the
// file-backed Service.
type PGService struct {
	db      *sql.DB
	nowFunc func() time.Time
	newID   func() string
}

func NewPGService(db *sql.DB) (*PGService, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &PGService{
		db:      db,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGService) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS work_entries (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	entry_date TEXT NOT NULL,
	task TEXT NOT NULL,
	hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	details TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure work_entries schema: %w", err)
	}
	const idx = `CREATE INDEX IF NOT EXISTS work_entries_username_idx ON work_entries (username)`
	if _, err := s.db.Exec(idx); err != nil {
		return fmt.Errorf("ensure work_entries index: %w", err)
	}
	return nil
}

func (s *PGService) List(username string) ([]Entry, error) {
	if username == "" {
		return []Entry{}, nil
	}

	const q = `
SELECT id, entry_date, task, hours, details, created_at
FROM work_entries
WHERE username = $1
ORDER BY created_at ASC`
	rows, err := s.db.Query(q, username)
	if err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Date, &e.Task, &e.Hours, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan work entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work entries: %w", err)
	}
	return out, nil
}

func (s *PGService) Add(username string, d Draft) (Entry, error) {
	if err := validateDraft(username, d); err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:        s.newID(),
		Date:      d.Date,
		Task:      strings.TrimSpace(d.Task),
		Hours:     d.Hours,
		Details:   d.Details,
		CreatedAt: s.nowFunc().UTC(),
	}

	const q = `
INSERT INTO work_entries (id, username, entry_date, task, hours, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := s.db.Exec(q, e.ID, username, e.Date, e.Task, e.Hours, e.Details, e.CreatedAt); err != nil {
		return Entry{}, fmt.Errorf("insert work entry: %w", err)
	}
	return e, nil
}

func (s *PGService) Update(username string, e Entry) error {
	if err := validateDraft(username, Draft{Date: e.Date, Task: e.Task, Hours: e.Hours, Details: e.Details}); err != nil {
		return err
	}

	const q = `
UPDATE work_entries
SET entry_date = $3,
	task = $4,
	hours = $5,
	details = $6
WHERE username = $1 AND id = $2`
	res, err := s.db.Exec(q, username, e.ID, e.Date, strings.TrimSpace(e.Task), e.Hours, e.Details)
	if err != nil {
		return fmt.Errorf("update work entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update work entry result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGService) Delete(username, id string) error {
	const q = `DELETE FROM work_entries WHERE username = $1 AND id = $2`
	if _, err := s.db.Exec(q, username, id); err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	return nil
}

func (s *PGService) Clear(username string) error {
	if username == "" {
		return nil
	}
	const q = `DELETE FROM work_entries WHERE username = $1`
	if _, err := s.db.Exec(q, username); err != nil {
		return fmt.Errorf("clear work entries: %w", err)
	}
	return nil
}

func (s *PGService) Merge(username string, drafts []Draft) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, fmt.Errorf("%w: username is required", ErrInvalidEntry)
	}

	existing, err := s.List(username)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[entryDedupKey(e)] = struct{}{}
	}

	added := 0
	for _, d := range drafts {
		if _, dup := seen[d.dedupKey()]; dup {
			continue
		}
		seen[d.dedupKey()] = struct{}{}
		if _, err := s.Add(username, d); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (s *PGService) Tasks(username string) ([]string, error) {
	const q = `SELECT DISTINCT task FROM work_entries WHERE username = $1`
	rows, err := s.db.Query(q, username)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	sort.Strings(out)
	return out, nil
}
