package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rbarros/pixwallet/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateAccount(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, acc.Name).Scan(&acc.ID, &acc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	query := `SELECT id, name, created_at FROM accounts WHERE id = $1`

	var acc account.Account

	err := s.db.QueryRowContext(ctx, query, id).Scan(&acc.ID, &acc.Name, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return &acc, nil
}
