package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

var createContactTables = []string{`
CREATE TABLE IF NOT EXISTS contact_info (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT,
	phone TEXT,
	github TEXT,
	linkedin TEXT,
	address TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	message TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions(created_at);`,
}

const (
	selectContactInfo = `SELECT id, email, phone, github, linkedin, address, created_at, updated_at FROM contact_info`
	selectSubmission  = `SELECT id, name, email, phone, message, created_at, updated_at FROM contact_submissions`
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Init(ctx context.Context) error {
	for _, stmt := range createContactTables {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create contact tables: %w", err)
		}
	}
	return nil
}

func (r *ContactRepository) LatestInfo(ctx context.Context) (*domain.ContactInfo, error) {
	row := r.db.QueryRowContext(ctx, selectContactInfo+` ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanContactInfo(row)
}

func (r *ContactRepository) GetInfo(ctx context.Context, id int64) (*domain.ContactInfo, error) {
	row := r.db.QueryRowContext(ctx, selectContactInfo+` WHERE id = ?`, id)
	return scanContactInfo(row)
}

func (r *ContactRepository) CreateInfo(ctx context.Context, info *domain.ContactInfo) (int64, error) {
	now := time.Now().UTC()
	info.CreatedAt = now
	info.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO contact_info (email, phone, github, linkedin, address, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullable(info.Email),
		nullable(info.Phone),
		nullable(info.Github),
		nullable(info.Linkedin),
		nullable(info.Address),
		info.CreatedAt,
		info.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact info: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact info last insert id: %w", err)
	}
	info.ID = id
	return id, nil
}

func (r *ContactRepository) PatchInfo(ctx context.Context, id int64, patch domain.ContactInfoPatch) error {
	return execAffecting(ctx, r.db, "update contact info", `
UPDATE contact_info
SET email = COALESCE(?, email),
	phone = COALESCE(?, phone),
	github = COALESCE(?, github),
	linkedin = COALESCE(?, linkedin),
	address = COALESCE(?, address),
	updated_at = ?
WHERE id = ?`,
		nullable(patch.Email),
		nullable(patch.Phone),
		nullable(patch.Github),
		nullable(patch.Linkedin),
		nullable(patch.Address),
		time.Now().UTC(),
		id,
	)
}

func (r *ContactRepository) CountInfo(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "contact_info")
}

func (r *ContactRepository) CreateSubmission(ctx context.Context, sub *domain.ContactSubmission) (int64, error) {
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO contact_submissions (name, email, phone, message, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		sub.Name,
		sub.Email,
		nullable(sub.Phone),
		sub.Message,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact submission: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("contact submission last insert id: %w", err)
	}
	sub.ID = id
	return id, nil
}

func (r *ContactRepository) ListSubmissions(ctx context.Context) ([]domain.ContactSubmission, error) {
	rows, err := r.db.QueryContext(ctx, selectSubmission+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query contact submissions: %w", err)
	}
	defer rows.Close()

	subs := []domain.ContactSubmission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (r *ContactRepository) GetSubmission(ctx context.Context, id int64) (*domain.ContactSubmission, error) {
	row := r.db.QueryRowContext(ctx, selectSubmission+` WHERE id = ?`, id)
	return scanSubmission(row)
}

func (r *ContactRepository) DeleteSubmission(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete contact submission", `DELETE FROM contact_submissions WHERE id = ?`, id)
}

func scanContactInfo(row rowScanner) (*domain.ContactInfo, error) {
	var (
		info                                    domain.ContactInfo
		email, phone, github, linkedin, address sql.NullString
	)
	if err := row.Scan(
		&info.ID,
		&email,
		&phone,
		&github,
		&linkedin,
		&address,
		&info.CreatedAt,
		&info.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "contact info")
	}
	info.Email = stringPtr(email)
	info.Phone = stringPtr(phone)
	info.Github = stringPtr(github)
	info.Linkedin = stringPtr(linkedin)
	info.Address = stringPtr(address)
	return &info, nil
}

func scanSubmission(row rowScanner) (*domain.ContactSubmission, error) {
	var (
		sub   domain.ContactSubmission
		phone sql.NullString
	)
	if err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Email,
		&phone,
		&sub.Message,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "contact submission")
	}
	sub.Phone = stringPtr(phone)
	return &sub, nil
}
