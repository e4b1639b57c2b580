package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

const createHomepageTable = `
CREATE TABLE IF NOT EXISTS homepage_settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	banner_title TEXT,
	banner_subtitle TEXT,
	banner_description TEXT,
	cv_file_path TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectHomepage = `
SELECT id, banner_title, banner_subtitle, banner_description, cv_file_path, created_at, updated_at
FROM homepage_settings`

type HomepageRepository struct {
	db *sql.DB
}

func NewHomepageRepository(db *sql.DB) repository.HomepageRepository {
	return &HomepageRepository{db: db}
}

func (r *HomepageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createHomepageTable); err != nil {
		return fmt.Errorf("create homepage_settings table: %w", err)
	}
	return nil
}

func (r *HomepageRepository) Latest(ctx context.Context) (*domain.HomepageSettings, error) {
	row := r.db.QueryRowContext(ctx, selectHomepage+`
ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanHomepage(row)
}

func (r *HomepageRepository) Get(ctx context.Context, id int64) (*domain.HomepageSettings, error) {
	row := r.db.QueryRowContext(ctx, selectHomepage+`
WHERE id = ?`, id)
	return scanHomepage(row)
}

func (r *HomepageRepository) Create(ctx context.Context, settings *domain.HomepageSettings) (int64, error) {
	now := time.Now().UTC()
	settings.CreatedAt = now
	settings.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO homepage_settings (banner_title, banner_subtitle, banner_description, cv_file_path, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		nullable(settings.BannerTitle),
		nullable(settings.BannerSubtitle),
		nullable(settings.BannerDescription),
		nullable(settings.CVFilePath),
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert homepage settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("homepage settings last insert id: %w", err)
	}
	settings.ID = id
	return id, nil
}

func (r *HomepageRepository) Patch(ctx context.Context, id int64, patch domain.HomepagePatch) error {
	return execAffecting(ctx, r.db, "update homepage settings", `
UPDATE homepage_settings
SET banner_title = COALESCE(?, banner_title),
	banner_subtitle = COALESCE(?, banner_subtitle),
	banner_description = COALESCE(?, banner_description),
	updated_at = ?
WHERE id = ?`,
		nullable(patch.BannerTitle),
		nullable(patch.BannerSubtitle),
		nullable(patch.BannerDescription),
		time.Now().UTC(),
		id,
	)
}

// SetCVPath overwrites the CV path; nil clears it.
func (r *HomepageRepository) SetCVPath(ctx context.Context, id int64, path *string) error {
	return execAffecting(ctx, r.db, "update cv path", `
UPDATE homepage_settings
SET cv_file_path = ?, updated_at = ?
WHERE id = ?`,
		nullable(path),
		time.Now().UTC(),
		id,
	)
}

func (r *HomepageRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "homepage_settings")
}

func scanHomepage(row rowScanner) (*domain.HomepageSettings, error) {
	var (
		settings    domain.HomepageSettings
		title       sql.NullString
		subtitle    sql.NullString
		description sql.NullString
		cvPath      sql.NullString
	)
	if err := row.Scan(
		&settings.ID,
		&title,
		&subtitle,
		&description,
		&cvPath,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "homepage settings")
	}
	settings.BannerTitle = stringPtr(title)
	settings.BannerSubtitle = stringPtr(subtitle)
	settings.BannerDescription = stringPtr(description)
	settings.CVFilePath = stringPtr(cvPath)
	return &settings, nil
}
