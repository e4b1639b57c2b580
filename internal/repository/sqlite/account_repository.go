package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// ErrDuplicateEmail is returned by Create when the email is already taken.
var ErrDuplicateEmail = errors.New("account email already exists")

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	full_name TEXT,
	password_hash TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectAccount = `SELECT id, email, full_name, password_hash, created_at, updated_at FROM profiles`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (int64, error) {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (email, full_name, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		account.Email,
		account.FullName,
		account.PasswordHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("insert account %s: %w", account.Email, ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account last insert id: %w", err)
	}
	account.ID = id
	return id, nil
}

// GetByEmail matches the email exactly as stored (case-sensitive).
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *AccountRepository) First(ctx context.Context) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+` ORDER BY id ASC LIMIT 1`)
	return scanAccount(row)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccount+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	account.UpdatedAt = time.Now().UTC()
	return execAffecting(ctx, r.db, "update account", `
UPDATE profiles
SET email=?, full_name=?, password_hash=?, updated_at=?
WHERE id=?`,
		account.Email,
		account.FullName,
		account.PasswordHash,
		account.UpdatedAt,
		account.ID,
	)
}

func (r *AccountRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles`)
	if err != nil {
		return 0, fmt.Errorf("delete accounts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete accounts rows affected: %w", err)
	}
	return n, nil
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		account  domain.Account
		fullName sql.NullString
		hash     sql.NullString
	)
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&fullName,
		&hash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "account")
	}
	account.FullName = fullName.String
	account.PasswordHash = hash.String
	return &account, nil
}
