package directory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateAccount = errors.New("username already exists")
	ErrInvalidUsername  = errors.New("username must not be empty")
)

// Service owns the username/passkey directory. Passkeys never leave it:
// List exposes usernames only, and login checks go through Verify.
type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("account store is required")
	}
	return &Service{store: store}, nil
}

// List returns every username in the directory, sorted.
func (s *Service) List() ([]string, error) {
	accounts, err := s.store.List()
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]string, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Username)
	}
	return out, nil
}

// Create adds a new account. The shell validates its form inputs, but an
// empty username is rejected here as well.
func (s *Service) Create(username, passkey string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidUsername
	}
	if _, err := s.store.GetByUsername(username); err == nil {
		return ErrDuplicateAccount
	} else if !errors.Is(err, ErrAccountNotFound) {
		return fmt.Errorf("check existing account: %w", err)
	}
	if err := s.store.Put(Account{Username: username, Passkey: passkey}); err != nil {
		return fmt.Errorf("store account: %w", err)
	}
	return nil
}

// Verify reports whether the directory holds username with exactly the given
// passkey. An absent username is false, never an error.
func (s *Service) Verify(username, passkey string) (bool, error) {
	a, err := s.store.GetByUsername(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up account: %w", err)
	}
	return a.Passkey == passkey, nil
}

// ResetPasskey overwrites the passkey for an existing account. Returns false
// without touching the store when the username is unknown.
func (s *Service) ResetPasskey(username, newPasskey string) (bool, error) {
	a, err := s.store.GetByUsername(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up account: %w", err)
	}
	a.Passkey = newPasskey
	if err := s.store.Put(a); err != nil {
		return false, fmt.Errorf("store passkey: %w", err)
	}
	return true, nil
}

// Exists reports whether the username is present.
func (s *Service) Exists(username string) (bool, error) {
	if _, err := s.store.GetByUsername(username); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("look up account: %w", err)
	}
	return true, nil
}
