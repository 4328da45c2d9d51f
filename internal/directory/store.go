package directory

import (
	"errors"
	"sort"
	"sync"
)

var ErrAccountNotFound = errors.New("account not found")

type Store interface {
	GetByUsername(username string) (Account, error)
	Put(account Account) error
	List() ([]Account, error)
}

type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[string]Account)}
}

func (s *InMemoryStore) GetByUsername(username string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[username]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a, nil
}

func (s *InMemoryStore) Put(account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Username] = account
	return nil
}

func (s *InMemoryStore) List() ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
