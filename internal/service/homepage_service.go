package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
	"portfolio-api/internal/storage"
)

// HomepageService manages the hero banner and the downloadable CV.
type HomepageService interface {
	Get(ctx context.Context) (*domain.HomepageSettings, error)
	Upsert(ctx context.Context, patch domain.HomepagePatch) (*domain.HomepageSettings, error)
	// UploadCV stores the CV and records its public URL, which is also returned.
	UploadCV(ctx context.Context, body io.Reader, size int64, contentType string) (*domain.HomepageSettings, string, error)
	DeleteCV(ctx context.Context) (*domain.HomepageSettings, error)
}

type homepageService struct {
	homepage repository.HomepageRepository
	files    storage.Service
}

func NewHomepageService(homepage repository.HomepageRepository, files storage.Service) HomepageService {
	return &homepageService{homepage: homepage, files: files}
}

func (s *homepageService) Get(ctx context.Context) (*domain.HomepageSettings, error) {
	return s.homepage.Latest(ctx)
}

func (s *homepageService) Upsert(ctx context.Context, patch domain.HomepagePatch) (*domain.HomepageSettings, error) {
	current, err := s.homepage.Latest(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		settings := &domain.HomepageSettings{
			BannerTitle:       orDefault(patch.BannerTitle, DefaultBannerTitle),
			BannerSubtitle:    orDefault(patch.BannerSubtitle, DefaultBannerSubtitle),
			BannerDescription: orDefault(patch.BannerDescription, DefaultBannerDescription),
		}
		if _, err := s.homepage.Create(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}

	if err := s.homepage.Patch(ctx, current.ID, patch); err != nil {
		return nil, fmt.Errorf("patch homepage: %w", err)
	}
	return s.homepage.Get(ctx, current.ID)
}

func (s *homepageService) UploadCV(ctx context.Context, body io.Reader, size int64, contentType string) (*domain.HomepageSettings, string, error) {
	if body == nil {
		return nil, "", invalid("No CV file uploaded")
	}
	url, err := s.files.Put(ctx, CVKey, body, size, contentType)
	if err != nil {
		return nil, "", fmt.Errorf("store cv: %w", err)
	}

	current, err := s.homepage.Latest(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, "", err
		}
		settings := defaultHomepage()
		settings.CVFilePath = &url
		if _, err := s.homepage.Create(ctx, settings); err != nil {
			return nil, "", err
		}
		return settings, url, nil
	}

	if err := s.homepage.SetCVPath(ctx, current.ID, &url); err != nil {
		return nil, "", err
	}
	updated, err := s.homepage.Get(ctx, current.ID)
	if err != nil {
		return nil, "", err
	}
	return updated, url, nil
}

func (s *homepageService) DeleteCV(ctx context.Context) (*domain.HomepageSettings, error) {
	current, err := s.homepage.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.files.Delete(ctx, CVKey); err != nil {
		return nil, fmt.Errorf("delete cv: %w", err)
	}
	if err := s.homepage.SetCVPath(ctx, current.ID, nil); err != nil {
		return nil, err
	}
	return s.homepage.Get(ctx, current.ID)
}

func defaultHomepage() *domain.HomepageSettings {
	title, subtitle, description := DefaultBannerTitle, DefaultBannerSubtitle, DefaultBannerDescription
	return &domain.HomepageSettings{
		BannerTitle:       &title,
		BannerSubtitle:    &subtitle,
		BannerDescription: &description,
	}
}

func orDefault(v *string, def string) *string {
	if v != nil && *v != "" {
		return v
	}
	return &def
}
