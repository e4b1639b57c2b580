package service

import (
	"context"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// ProjectService manages portfolio projects.
type ProjectService interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, project domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	projects repository.ProjectRepository
}

func NewProjectService(projects repository.ProjectRepository) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *projectService) Create(ctx context.Context, project domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(project.Title) == "" {
		return nil, invalid("Title is required")
	}
	project.ID = 0
	if _, err := s.projects.Create(ctx, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *projectService) Update(ctx context.Context, id int64, patch domain.ProjectPatch) (*domain.Project, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, invalid("Title cannot be empty")
	}
	if err := s.projects.Patch(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	return s.projects.Delete(ctx, id)
}
