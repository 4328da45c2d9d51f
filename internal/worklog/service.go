package worklog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("work entry not found")
	ErrInvalidEntry = errors.New("invalid work entry input")
)

// Service is the file-backed entry store: all accounts' entry lists live in
// one JSON state file keyed by username, rewritten wholesale on every
// mutation.
type Service struct {
	nowFunc   func() time.Time
	newID     func() string
	stateFile string

	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewService() *Service {
	return &Service{
		nowFunc: time.Now,
		newID:   uuid.NewString,
		entries: make(map[string][]Entry),
	}
}

func NewServiceWithFile(stateFile string) (*Service, error) {
	s := &Service{
		nowFunc:   time.Now,
		newID:     uuid.NewString,
		stateFile: strings.TrimSpace(stateFile),
		entries:   make(map[string][]Entry),
	}
	if s.stateFile == "" {
		return nil, fmt.Errorf("entry state file path is required")
	}
	if err := s.loadState(); err != nil {
		return nil, err
	}
	return s, nil
}

// List returns the account's entries in insertion order. Unknown or empty
// usernames yield an empty slice, never an error.
func (s *Service) List(username string) ([]Entry, error) {
	if username == "" {
		return []Entry{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries[username]), nil
}

func (s *Service) Add(username string, d Draft) (Entry, error) {
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

	s.mu.Lock()
	prev := cloneEntries(s.entries[username])
	s.entries[username] = append(s.entries[username], e)
	if err := s.persistLocked(); err != nil {
		s.entries[username] = prev
		s.mu.Unlock()
		return Entry{}, err
	}
	s.mu.Unlock()

	return e, nil
}

// Update replaces the mutable fields of the entry matching e.ID. ID and
// CreatedAt are immutable and kept from the stored record.
func (s *Service) Update(username string, e Entry) error {
	if err := validateDraft(username, Draft{Date: e.Date, Task: e.Task, Hours: e.Hours, Details: e.Details}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[username]
	idx := -1
	for i := range list {
		if list[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	prev := cloneEntries(list)
	list[idx].Date = e.Date
	list[idx].Task = strings.TrimSpace(e.Task)
	list[idx].Hours = e.Hours
	list[idx].Details = e.Details
	if err := s.persistLocked(); err != nil {
		s.entries[username] = prev
		return err
	}
	return nil
}

// Delete removes the entry with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *Service) Delete(username, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[username]
	kept := make([]Entry, 0, len(list))
	for _, e := range list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(list) {
		return nil
	}

	prev := cloneEntries(list)
	s.entries[username] = kept
	if err := s.persistLocked(); err != nil {
		s.entries[username] = prev
		return err
	}
	return nil
}

// Clear drops every entry owned by the account. Other accounts are untouched.
func (s *Service) Clear(username string) error {
	if username == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[username]
	if !had {
		return nil
	}
	delete(s.entries, username)
	if err := s.persistLocked(); err != nil {
		s.entries[username] = prev
		return err
	}
	return nil
}

// Merge inserts only the drafts whose (task, date, details) key is not
// already present for the account, and reports how many were added.
// Reseeding with the same bundle therefore converges to a fixed set.
func (s *Service) Merge(username string, drafts []Draft) (int, error) {
	if strings.TrimSpace(username) == "" {
		return 0, fmt.Errorf("%w: username is required", ErrInvalidEntry)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.entries[username]))
	for _, e := range s.entries[username] {
		seen[entryDedupKey(e)] = struct{}{}
	}

	prev := cloneEntries(s.entries[username])
	added := 0
	for _, d := range drafts {
		if _, dup := seen[d.dedupKey()]; dup {
			continue
		}
		seen[d.dedupKey()] = struct{}{}
		s.entries[username] = append(s.entries[username], Entry{
			ID:        s.newID(),
			Date:      d.Date,
			Task:      d.Task,
			Hours:     d.Hours,
			Details:   d.Details,
			CreatedAt: s.nowFunc().UTC(),
		})
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.persistLocked(); err != nil {
		s.entries[username] = prev
		return 0, err
	}
	return added, nil
}

// Tasks returns the distinct task names for the account, sorted.
func (s *Service) Tasks(username string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := make(map[string]struct{})
	for _, e := range s.entries[username] {
		set[e.Task] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Service) loadState() error {
	b, err := os.ReadFile(s.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read entry state: %w", err)
	}
	if len(b) == 0 {
		return nil
	}
	decoded := make(map[string][]Entry)
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("decode entry state: %w", err)
	}
	for username, list := range decoded {
		if strings.TrimSpace(username) == "" {
			continue
		}
		s.entries[username] = list
	}
	return nil
}

func (s *Service) persistLocked() error {
	if s.stateFile == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entry state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.stateFile), 0o755); err != nil {
		return fmt.Errorf("mkdir entry state dir: %w", err)
	}
	if err := os.WriteFile(s.stateFile, b, 0o644); err != nil {
		return fmt.Errorf("write entry state: %w", err)
	}
	return nil
}

func cloneEntries(src []Entry) []Entry {
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

func validateDraft(username string, d Draft) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(d.Task) == "" {
		return fmt.Errorf("%w: task is required", ErrInvalidEntry)
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEntry)
	}
	if d.Hours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidEntry)
	}
	return nil
}
