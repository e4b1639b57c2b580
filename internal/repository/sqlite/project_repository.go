package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT,
	image_url TEXT,
	technologies TEXT,
	project_url TEXT,
	github_url TEXT,
	featured INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectProject = `
SELECT id, title, description, image_url, technologies, project_url, github_url, featured, created_at, updated_at
FROM projects`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProjectsTable); err != nil {
		return fmt.Errorf("create projects table: %w", err)
	}
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, selectProject+`
ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, selectProject+`
WHERE id = ?`, id)
	return scanProject(row)
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (int64, error) {
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.Technologies == nil {
		project.Technologies = []string{}
	}

	techs, err := encodeList(project.Technologies)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO projects (title, description, image_url, technologies, project_url, github_url, featured, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Title,
		nullable(project.Description),
		nullable(project.ImageURL),
		techs,
		nullable(project.ProjectURL),
		nullable(project.GithubURL),
		nullableBool(&project.Featured),
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project last insert id: %w", err)
	}
	project.ID = id
	return id, nil
}

func (r *ProjectRepository) Patch(ctx context.Context, id int64, patch domain.ProjectPatch) error {
	techs, err := encodeList(patch.Technologies)
	if err != nil {
		return err
	}
	return execAffecting(ctx, r.db, "update project", `
UPDATE projects
SET title = COALESCE(?, title),
	description = COALESCE(?, description),
	image_url = COALESCE(?, image_url),
	technologies = COALESCE(?, technologies),
	project_url = COALESCE(?, project_url),
	github_url = COALESCE(?, github_url),
	featured = COALESCE(?, featured),
	updated_at = ?
WHERE id = ?`,
		nullable(patch.Title),
		nullable(patch.Description),
		nullable(patch.ImageURL),
		techs,
		nullable(patch.ProjectURL),
		nullable(patch.GithubURL),
		nullableBool(patch.Featured),
		time.Now().UTC(),
		id,
	)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, "delete project", `DELETE FROM projects WHERE id = ?`, id)
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db, "projects")
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project     domain.Project
		description sql.NullString
		imageURL    sql.NullString
		techs       sql.NullString
		projectURL  sql.NullString
		githubURL   sql.NullString
		featured    int
	)
	if err := row.Scan(
		&project.ID,
		&project.Title,
		&description,
		&imageURL,
		&techs,
		&projectURL,
		&githubURL,
		&featured,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, notFound(err, "project")
	}
	project.Description = stringPtr(description)
	project.ImageURL = stringPtr(imageURL)
	project.Technologies = decodeList(techs)
	project.ProjectURL = stringPtr(projectURL)
	project.GithubURL = stringPtr(githubURL)
	project.Featured = featured != 0
	return &project, nil
}
