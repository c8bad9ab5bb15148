package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/google/uuid"
)

type ContactService struct {
	contacts  repository.ContactRepository
	sanitizer *security.TextSanitizer
}

func NewContactService(contacts repository.ContactRepository, sanitizer *security.TextSanitizer) *ContactService {
	return &ContactService{contacts: contacts, sanitizer: sanitizer}
}

// Submit stores a contact inquiry with status PENDING.
func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*models.ContactForm, error) {
	form := models.ContactForm{
		ID:      uuid.New(),
		Name:    s.sanitizer.Clean(req.Name),
		Email:   normalizeEmail(req.Email),
		Phone:   blankToNil(s.sanitizer.CleanPtr(req.Phone)),
		Subject: s.sanitizer.Clean(req.Subject),
		Message: s.sanitizer.Clean(req.Message),
		Status:  models.ContactStatusPending,
	}

	if err := required("name", form.Name, "email", form.Email, "subject", form.Subject, "message", form.Message); err != nil {
		return nil, err
	}
	if !validEmail(form.Email) {
		return nil, invalid("invalid email address")
	}

	if err := s.contacts.Create(ctx, &form); err != nil {
		return nil, fmt.Errorf("failed to save contact form: %w", err)
	}
	slog.Info("contact form received", "id", form.ID, "subject", form.Subject)
	return &form, nil
}
