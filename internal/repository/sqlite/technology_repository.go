package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

const createTechnologiesTable = `
CREATE TABLE IF NOT EXISTS technologies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	icon TEXT,
	color TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectTechnology = `SELECT id, name, category, icon, color, created_at, updated_at FROM technologies`

type TechnologyRepository struct {
	db *sql.DB
}

func NewTechnologyRepository(db *sql.DB) repository.TechnologyRepository {
	return &TechnologyRepository{db: db}
}

func (r *TechnologyRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTechnologiesTable); err != nil {
		return fmt.Errorf("create technologies table: %w", err)
	}
	return nil
}

func (r *TechnologyRepository) List(ctx context.Context) ([]domain.Technology, error) {
	rows, err := r.db.QueryContext(ctx, selectTechnology+` ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query technologies: %w", err)
	}
	defer rows.Close()

	techs := []domain.Technology{}
	for rows.Next() {
		tech, err := scanTechnology(rows)
		if err != nil {
			return nil, err
		}
		techs = append(techs, *tech)
	}
	return techs, rows.Err()
}

func (r *TechnologyRepository) Get(ctx context.Context, id int64) (*domain.Technology, error) {
	row := r.db.QueryRowContext(ctx, selectTechnology+` WHERE id = ?`, id)
	return scanTechnology(row)
}

func (r *TechnologyRepository) Create(ctx context.Context, tech *domain.Technology) (int64, error) {
	now := time.Now().UTC()
	tech.CreatedAt = now
	tech.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO technologies (name, category, icon, color, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		tech.Name,
		tech.Category,
		nullable(tech.Icon),
		nullable(tech.Color),
		tech.CreatedAt,
		tech.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert technology: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("technology last insert id: %w", err)
	}
	tech.ID = id
	return id, nil
}

func (r *TechnologyRepository) Patch(ctx context.Context, id int64, patch domain.TechnologyPatch) error {
	return execAffecting(ctx, r.db, "update technology", `
UPDATE technologies
SET name = COALESCE(?, name),
	category = COALESCE(?, category),
	icon = COALESCE(?, icon),
	color = COALESCE(?, color),
	updated_at = ?
WHERE id = ?`,
		nullable(patch.Name),
		nullable(patch.Category),
		nullable(patch.Icon),
		nullable(patch.Color),
		time.Now().UTC(),
		id,
	)
}

func (r *TechnologyRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete technology", `DELETE FROM technologies WHERE id = ?`, id)
}

func (r *TechnologyRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "technologies")
}

func scanTechnology(row rowScanner) (*domain.Technology, error) {
	var (
		tech  domain.Technology
		icon  sql.NullString
		color sql.NullString
	)
	if err := row.Scan(
		&tech.ID,
		&tech.Name,
		&tech.Category,
		&icon,
		&color,
		&tech.CreatedAt,
		&tech.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "technology")
	}
	tech.Icon = stringPtr(icon)
	tech.Color = stringPtr(color)
	return &tech, nil
}
