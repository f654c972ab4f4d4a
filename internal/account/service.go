package account

import (
	"context"
)

type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, id int64) (*Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (*Account, error) {
	acc := &Account{Name: name}
	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// Get resolves an account by its id. There is no lookup by anything else:
// resolution is explicit and typed.
func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}
