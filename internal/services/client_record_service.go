package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/buscaserv/buscaserv-api/internal/security"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientRecordService manages a provider's client records. Every operation
// is scoped to the provider id passed in, which callers resolve from the session.
type ClientRecordService struct {
	records   repository.ClientRecordRepository
	sanitizer *security.TextSanitizer
	now       func() time.Time
}

func NewClientRecordService(records repository.ClientRecordRepository, sanitizer *security.TextSanitizer) *ClientRecordService {
	return &ClientRecordService{records: records, sanitizer: sanitizer, now: time.Now}
}

func (s *ClientRecordService) List(ctx context.Context, providerID uuid.UUID) ([]models.ClientRecord, error) {
	records, err := s.records.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client records: %w", err)
	}
	if records == nil {
		records = []models.ClientRecord{}
	}
	return records, nil
}

func (s *ClientRecordService) Create(ctx context.Context, providerID uuid.UUID, req *dto.CreateClientRecordRequest) (*models.ClientRecord, error) {
	name := s.sanitizer.Clean(req.ClientName)
	serviceType := s.sanitizer.Clean(req.ServiceType)

	var missing []string
	if name == "" {
		missing = append(missing, "clientName")
	}
	if serviceType == "" {
		missing = append(missing, "serviceType")
	}
	if req.Value == nil {
		missing = append(missing, "value")
	}
	if len(missing) > 0 {
		return nil, invalid("missing required fields: " + strings.Join(missing, ", "))
	}
	if err := validValue(*req.Value); err != nil {
		return nil, err
	}

	email, err := s.contactEmail(req.ClientEmail)
	if err != nil {
		return nil, err
	}

	performed := s.now().UTC()
	if req.DatePerformed != nil && !req.DatePerformed.IsZero() {
		performed = req.DatePerformed.Time
	}

	record := models.ClientRecord{
		ID:                uuid.New(),
		ServiceProviderID: providerID,
		ClientName:        name,
		ClientEmail:       email,
		ClientPhone:       blankToNil(s.sanitizer.CleanPtr(req.ClientPhone)),
		ServiceType:       serviceType,
		Value:             req.Value.Round(2),
		DatePerformed:     performed,
	}
	if err := s.records.Create(ctx, &record); err != nil {
		return nil, fmt.Errorf("failed to create client record: %w", err)
	}
	return &record, nil
}

// Update applies a partial update to a record owned by providerID. Blank
// clientName or serviceType leave the stored value; blank email or phone clear it.
func (s *ClientRecordService) Update(ctx context.Context, providerID, recordID uuid.UUID, req *dto.UpdateClientRecordRequest) (*models.ClientRecord, error) {
	record, err := s.owned(ctx, providerID, recordID)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		if v := s.sanitizer.Clean(*req.ClientName); v != "" {
			record.ClientName = v
		}
	}
	if req.ServiceType != nil {
		if v := s.sanitizer.Clean(*req.ServiceType); v != "" {
			record.ServiceType = v
		}
	}
	if req.ClientEmail != nil {
		email, err := s.contactEmail(req.ClientEmail)
		if err != nil {
			return nil, err
		}
		record.ClientEmail = email
	}
	if req.ClientPhone != nil {
		record.ClientPhone = blankToNil(s.sanitizer.CleanPtr(req.ClientPhone))
	}
	if req.Value != nil {
		if err := validValue(*req.Value); err != nil {
			return nil, err
		}
		record.Value = req.Value.Round(2)
	}
	if req.DatePerformed != nil && !req.DatePerformed.IsZero() {
		record.DatePerformed = req.DatePerformed.Time
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update client record: %w", err)
	}
	return record, nil
}

func (s *ClientRecordService) Delete(ctx context.Context, providerID, recordID uuid.UUID) error {
	if _, err := s.owned(ctx, providerID, recordID); err != nil {
		return err
	}
	deleted, err := s.records.DeleteOwned(ctx, providerID, recordID)
	if err != nil {
		return fmt.Errorf("failed to delete client record: %w", err)
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

func (s *ClientRecordService) owned(ctx context.Context, providerID, recordID uuid.UUID) (*models.ClientRecord, error) {
	record, err := s.records.FindOwned(ctx, providerID, recordID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *ClientRecordService) contactEmail(v *string) (*string, error) {
	email := blankToNil(s.sanitizer.CleanPtr(v))
	if email != nil && !validEmail(*email) {
		return nil, invalid("invalid clientEmail")
	}
	return email, nil
}

// maxValue is the first amount that no longer fits numeric(12,2).
var maxValue = decimal.New(1, 10)

func validValue(v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalid("value must be greater than zero")
	}
	if v.Round(2).GreaterThanOrEqual(maxValue) {
		return invalid("value must be less than 10000000000")
	}
	return nil
}

func blankToNil(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}
