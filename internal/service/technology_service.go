package service

import (
	"context"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// TechnologyService manages technology badges.
type TechnologyService interface {
	List(ctx context.Context) ([]domain.Technology, error)
	Get(ctx context.Context, id int64) (*domain.Technology, error)
	Create(ctx context.Context, tech domain.Technology) (*domain.Technology, error)
	Update(ctx context.Context, id int64, patch domain.TechnologyPatch) (*domain.Technology, error)
	Delete(ctx context.Context, id int64) error
}

type technologyService struct {
	techs repository.TechnologyRepository
}

func NewTechnologyService(techs repository.TechnologyRepository) TechnologyService {
	return &technologyService{techs: techs}
}

func (s *technologyService) List(ctx context.Context) ([]domain.Technology, error) {
	return s.techs.List(ctx)
}

func (s *technologyService) Get(ctx context.Context, id int64) (*domain.Technology, error) {
	return s.techs.Get(ctx, id)
}

func (s *technologyService) Create(ctx context.Context, tech domain.Technology) (*domain.Technology, error) {
	if strings.TrimSpace(tech.Name) == "" || strings.TrimSpace(tech.Category) == "" {
		return nil, invalid("Name and category are required")
	}
	tech.ID = 0
	if _, err := s.techs.Create(ctx, &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (s *technologyService) Update(ctx context.Context, id int64, patch domain.TechnologyPatch) (*domain.Technology, error) {
	if (patch.Name != nil && strings.TrimSpace(*patch.Name) == "") ||
		(patch.Category != nil && strings.TrimSpace(*patch.Category) == "") {
		return nil, invalid("Name and category cannot be empty")
	}
	if err := s.techs.Patch(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.techs.Get(ctx, id)
}

func (s *technologyService) Delete(ctx context.Context, id int64) error {
	return s.techs.Delete(ctx, id)
}
