package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio-api/internal/domain"
	"portfolio-api/internal/repository"
)

// ContactService manages public contact details and form submissions.
type ContactService interface {
	GetInfo(ctx context.Context) (*domain.ContactInfo, error)
	UpsertInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error)
	Submit(ctx context.Context, sub domain.ContactSubmission) (*domain.ContactSubmission, error)
	ListSubmissions(ctx context.Context) ([]domain.ContactSubmission, error)
	GetSubmission(ctx context.Context, id int64) (*domain.ContactSubmission, error)
	DeleteSubmission(ctx context.Context, id int64) error
}

type contactService struct {
	contact repository.ContactRepository
}

func NewContactService(contact repository.ContactRepository) ContactService {
	return &contactService{contact: contact}
}

func (s *contactService) GetInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return s.contact.LatestInfo(ctx)
}

func (s *contactService) UpsertInfo(ctx context.Context, patch domain.ContactInfoPatch) (*domain.ContactInfo, error) {
	current, err := s.contact.LatestInfo(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		info := &domain.ContactInfo{
			Email:    patch.Email,
			Phone:    patch.Phone,
			Github:   patch.Github,
			Linkedin: patch.Linkedin,
			Address:  patch.Address,
		}
		if _, err := s.contact.CreateInfo(ctx, info); err != nil {
			return nil, err
		}
		return info, nil
	}

	if err := s.contact.PatchInfo(ctx, current.ID, patch); err != nil {
		return nil, fmt.Errorf("patch contact info: %w", err)
	}
	return s.contact.GetInfo(ctx, current.ID)
}

func (s *contactService) Submit(ctx context.Context, sub domain.ContactSubmission) (*domain.ContactSubmission, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	if sub.Name == "" || sub.Email == "" || strings.TrimSpace(sub.Message) == "" {
		return nil, invalid("Name, email, and message are required")
	}
	sub.ID = 0
	if _, err := s.contact.CreateSubmission(ctx, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *contactService) ListSubmissions(ctx context.Context) ([]domain.ContactSubmission, error) {
	return s.contact.ListSubmissions(ctx)
}

func (s *contactService) GetSubmission(ctx context.Context, id int64) (*domain.ContactSubmission, error) {
	return s.contact.GetSubmission(ctx, id)
}

func (s *contactService) DeleteSubmission(ctx context.Context, id int64) error {
	return s.contact.DeleteSubmission(ctx, id)
}
