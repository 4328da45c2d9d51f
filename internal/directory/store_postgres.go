package directory

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS accounts (
	username TEXT PRIMARY KEY,
	passkey TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure accounts schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByUsername(username string) (Account, error) {
	if strings.TrimSpace(username) == "" {
		return Account{}, ErrAccountNotFound
	}

	var a Account
	const q = `SELECT username, passkey FROM accounts WHERE username = $1`
	if err := s.db.QueryRow(q, username).Scan(&a.Username, &a.Passkey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrAccountNotFound
		}
		return Account{}, fmt.Errorf("query account: %w", err)
	}
	return a, nil
}

func (s *PostgresStore) Put(account Account) error {
	if strings.TrimSpace(account.Username) == "" {
		return fmt.Errorf("username is required")
	}

	const q = `
INSERT INTO accounts (username, passkey, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (username) DO UPDATE
SET passkey = EXCLUDED.passkey,
	updated_at = NOW()`
	if _, err := s.db.Exec(q, account.Username, account.Passkey); err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

func (s *PostgresStore) List() ([]Account, error) {
	const q = `SELECT username, passkey FROM accounts ORDER BY username ASC`
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	out := make([]Account, 0)
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.Username, &a.Passkey); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}
