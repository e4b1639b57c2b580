package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// AboutService manages the singleton About block.
type AboutService interface {
	Get(ctx context.Context) (*domain.About, error)
	// Upsert patches the current block, creating it with defaults when absent.
	Upsert(ctx context.Context, patch domain.AboutPatch) (*domain.About, error)
	// Create fails with ErrConflict when a block already exists.
	Create(ctx context.Context, about domain.About) (*domain.About, error)
}

type aboutService struct {
	about repository.AboutRepository
}

func NewAboutService(about repository.AboutRepository) AboutService {
	return &aboutService{about: about}
}

func (s *aboutService) Get(ctx context.Context) (*domain.About, error) {
	return s.about.Latest(ctx)
}

func (s *aboutService) Upsert(ctx context.Context, patch domain.AboutPatch) (*domain.About, error) {
	current, err := s.about.Latest(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		about := &domain.About{
			Content: DefaultAboutContent,
			Skills:  patch.Skills,
		}
		if patch.Content != nil && *patch.Content != "" {
			about.Content = *patch.Content
		}
		if patch.ExperienceYears != nil {
			about.ExperienceYears = *patch.ExperienceYears
		}
		if _, err := s.about.Create(ctx, about); err != nil {
			return nil, err
		}
		return about, nil
	}

	if err := s.about.Patch(ctx, current.ID, patch); err != nil {
		return nil, fmt.Errorf("patch about: %w", err)
	}
	return s.about.Get(ctx, current.ID)
}

func (s *aboutService) Create(ctx context.Context, about domain.About) (*domain.About, error) {
	if strings.TrimSpace(about.Content) == "" {
		return nil, invalid("Content is required")
	}
	n, err := s.about.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("about: %w", ErrConflict)
	}
	about.ID = 0
	if _, err := s.about.Create(ctx, &about); err != nil {
		return nil, err
	}
	return &about, nil
}
