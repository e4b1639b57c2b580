package auth

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// AccountStore is the read side of the account repository used by this package.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// Verifier checks login credentials against stored bcrypt hashes.
type Verifier struct {
	accounts  AccountStore
	dummyHash []byte
}

// NewVerifier builds a Verifier. cost should match the cost used for stored
// hashes so that unknown emails take as long as wrong passwords.
func NewVerifier(accounts AccountStore, cost int) (*Verifier, error) {
	dummy, err := HashPassword("portfolio-dummy-password", cost)
	if err != nil {
		return nil, err
	}
	return &Verifier{accounts: accounts, dummyHash: []byte(dummy)}, nil
}

// Verify returns the identity of the account matching email and password.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (v *Verifier) Verify(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == "" || password == "" {
		return domain.Identity{}, ErrInvalidCredentials
	}

	account, err := v.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			passwordMatches(v.dummyHash, password)
			return domain.Identity{}, ErrInvalidCredentials
		}
		return domain.Identity{}, fmt.Errorf("lookup account: %w", err)
	}

	if account.PasswordHash == "" || !passwordMatches([]byte(account.PasswordHash), password) {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return account.Identity(), nil
}
