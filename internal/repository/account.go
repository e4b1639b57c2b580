package repository

import (
	"context"
	"errors"

	"portfolio-api/internal/domain"
)

// ErrNotFound is returned (possibly wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// AccountRepository defines persistence operations for Account entities.
type AccountRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, account *domain.Account) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	First(ctx context.Context) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	DeleteAll(ctx context.Context) (int64, error)
}
