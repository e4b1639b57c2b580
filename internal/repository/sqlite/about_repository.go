package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

const createAboutTable = `
CREATE TABLE IF NOT EXISTS about (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	skills TEXT,
	experience_years INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectAbout = `SELECT id, content, skills, experience_years, created_at, updated_at FROM about`

type AboutRepository struct {
	db *sql.DB
}

func NewAboutRepository(db *sql.DB) repository.AboutRepository {
	return &AboutRepository{db: db}
}

func (r *AboutRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAboutTable); err != nil {
		return fmt.Errorf("create about table: %w", err)
	}
	return nil
}

func (r *AboutRepository) Latest(ctx context.Context) (*domain.About, error) {
	row := r.db.QueryRowContext(ctx, selectAbout+` ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanAbout(row)
}

func (r *AboutRepository) Get(ctx context.Context, id int64) (*domain.About, error) {
	row := r.db.QueryRowContext(ctx, selectAbout+` WHERE id = ?`, id)
	return scanAbout(row)
}

func (r *AboutRepository) Create(ctx context.Context, about *domain.About) (int64, error) {
	now := time.Now().UTC()
	about.CreatedAt = now
	about.UpdatedAt = now
	if about.Skills == nil {
		about.Skills = []string{}
	}

	skills, err := encodeList(about.Skills)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO about (content, skills, experience_years, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		about.Content,
		skills,
		about.ExperienceYears,
		about.CreatedAt,
		about.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert about: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("about last insert id: %w", err)
	}
	about.ID = id
	return id, nil
}

func (r *AboutRepository) Patch(ctx context.Context, id int64, patch domain.AboutPatch) error {
	skills, err := encodeList(patch.Skills)
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, "update about", `
UPDATE about
SET content = COALESCE(?, content),
	skills = COALESCE(?, skills),
	experience_years = COALESCE(?, experience_years),
	updated_at = ?
WHERE id = ?`,
		nullable(patch.Content),
		skills,
		nullable(patch.ExperienceYears),
		time.Now().UTC(),
		id,
	)
}

func (r *AboutRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "about")
}

func scanAbout(row rowScanner) (*domain.About, error) {
	var (
		about  domain.About
		skills sql.NullString
	)
	if err := row.Scan(
		&about.ID,
		&about.Content,
		&skills,
		&about.ExperienceYears,
		&about.CreatedAt,
		&about.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "about")
	}
	about.Skills = decodeList(skills)
	return &about, nil
}
