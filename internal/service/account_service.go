package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// AdminSpec describes the admin account to provision.
type AdminSpec struct {
	Email    string
	Password string
	FullName string
}

// AccountService provisions and inspects the admin account.
type AccountService interface {
	// EnsureAdmin updates the first account to match spec, or creates it when
	// no account exists. created reports which happened. The password hash is
	// only replaced when the password actually changes.
	EnsureAdmin(ctx context.Context, spec AdminSpec) (account *domain.Account, created bool, err error)
	// ProvisionAdmin creates the admin from spec only when no account exists.
	// An existing account is returned untouched.
	ProvisionAdmin(ctx context.Context, spec AdminSpec) (account *domain.Account, created bool, err error)
	// ResetAdmin deletes every account and creates the admin afresh.
	ResetAdmin(ctx context.Context, spec AdminSpec) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Identity, error)
}

type accountService struct {
	accounts   repository.AccountRepository
	bcryptCost int
}

func NewAccountService(accounts repository.AccountRepository, bcryptCost int) AccountService {
	return &accountService{
		accounts:   accounts,
		bcryptCost: bcryptCost,
	}
}

func (s *accountService) EnsureAdmin(ctx context.Context, spec AdminSpec) (*domain.Account, bool, error) {
	spec, err := normalizeAdmin(spec)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.accounts.First(ctx)
	switch {
	case err == nil:
		existing.Email = spec.Email
		existing.FullName = spec.FullName
		if !auth.PasswordMatches(existing.PasswordHash, spec.Password) {
			hash, err := auth.HashPassword(spec.Password, s.bcryptCost)
			if err != nil {
				return nil, false, err
			}
			existing.PasswordHash = hash
		}
		if err := s.accounts.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("update admin: %w", err)
		}
		return sanitizeAccount(existing), false, nil
	case errors.Is(err, repository.ErrNotFound):
		return s.createAdmin(ctx, spec)
	default:
		return nil, false, fmt.Errorf("load admin: %w", err)
	}
}

func (s *accountService) ProvisionAdmin(ctx context.Context, spec AdminSpec) (*domain.Account, bool, error) {
	existing, err := s.accounts.First(ctx)
	switch {
	case err == nil:
		return sanitizeAccount(existing), false, nil
	case errors.Is(err, repository.ErrNotFound):
		spec, err := normalizeAdmin(spec)
		if err != nil {
			return nil, false, err
		}
		return s.createAdmin(ctx, spec)
	default:
		return nil, false, fmt.Errorf("load admin: %w", err)
	}
}

func (s *accountService) createAdmin(ctx context.Context, spec AdminSpec) (*domain.Account, bool, error) {
	hash, err := auth.HashPassword(spec.Password, s.bcryptCost)
	if err != nil {
		return nil, false, err
	}
	account, err := s.create(ctx, spec, hash)
	return account, err == nil, err
}

func (s *accountService) ResetAdmin(ctx context.Context, spec AdminSpec) (*domain.Account, error) {
	spec, err := normalizeAdmin(spec)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(spec.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.DeleteAll(ctx); err != nil {
		return nil, err
	}
	return s.create(ctx, spec, hash)
}

func (s *accountService) List(ctx context.Context) ([]domain.Identity, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Identity, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.Identity())
	}
	return out, nil
}

func (s *accountService) create(ctx context.Context, spec AdminSpec, hash string) (*domain.Account, error) {
	account := &domain.Account{
		Email:        spec.Email,
		FullName:     spec.FullName,
		PasswordHash: hash,
	}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return sanitizeAccount(account), nil
}

func normalizeAdmin(spec AdminSpec) (AdminSpec, error) {
	spec.Email = strings.TrimSpace(spec.Email)
	spec.FullName = strings.TrimSpace(spec.FullName)
	if spec.Email == "" {
		return spec, invalid("admin email is required")
	}
	if spec.Password == "" {
		return spec, invalid("admin password is required")
	}
	if spec.FullName == "" {
		spec.FullName = "Admin User"
	}
	return spec, nil
}

func sanitizeAccount(account *domain.Account) *domain.Account {
	if account == nil {
		return nil
	}
	return &domain.Account{
		ID:        account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
