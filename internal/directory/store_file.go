package directory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileStore keeps the whole directory in one JSON state file, rewritten
// wholesale on every mutation.
type FileStore struct {
	path string

	mu       sync.RWMutex
	accounts map[string]Account
}

func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("directory state file path is required")
	}

	s := &FileStore{
		path:     path,
		accounts: make(map[string]Account),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) GetByUsername(username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (s *FileStore) Put(account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.accounts[account.Username]
	s.accounts[account.Username] = account
	if err := s.persistLocked(); err != nil {
		if had {
			s.accounts[account.Username] = prev
		} else {
			delete(s.accounts, account.Username)
		}
		return err
	}
	return nil
}

func (s *FileStore) List() ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read directory state file: %w", err)
	}
	if len(b) == 0 {
		return nil
	}

	var decoded []Account
	if err := json.Unmarshal(b, &decoded); err != nil {
		return fmt.Errorf("decode directory state file: %w", err)
	}
	for _, a := range decoded {
		if strings.TrimSpace(a.Username) == "" {
			continue
		}
		s.accounts[a.Username] = a
	}
	return nil
}

func (s *FileStore) persistLocked() error {
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode directory state file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir directory state dir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write directory state file: %w", err)
	}
	return nil
}
