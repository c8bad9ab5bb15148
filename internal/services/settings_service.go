package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
)

// DefaultSettings are created on seed when absent; existing values are kept.
var DefaultSettings = []models.SiteSetting{
	{Key: "nomeEmpresa", Value: "BuscaServ", Type: "string"},
	{Key: "descricaoEmpresa", Value: "Encontre profissionais de confiança na sua cidade.", Type: "string"},
	{Key: "telefoneSuporte", Value: "(11) 4000-0000", Type: "string"},
	{Key: "whatsappSuporte", Value: "(11) 90000-0000", Type: "string"},
	{Key: "emailContato", Value: "contato@buscaserv.com.br", Type: "string"},
	{Key: "urlSite", Value: "https://buscaserv.com.br", Type: "string"},
}

type SettingsService struct {
	settings repository.SettingRepository
}

func NewSettingsService(settings repository.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// Public returns every setting decoded by its type.
func (s *SettingsService) Public(ctx context.Context) (map[string]interface{}, error) {
	rows, err := s.settings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	result := make(map[string]interface{}, len(rows))
	for i := range rows {
		result[rows[i].Key] = rows[i].Typed()
	}
	return result, nil
}

func (s *SettingsService) List(ctx context.Context) ([]dto.SettingResponse, error) {
	rows, err := s.settings.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, settingResponse(&rows[i]))
	}
	return out, nil
}

// Set creates or updates key. A non-nil req.Version must match the stored one.
func (s *SettingsService) Set(ctx context.Context, key string, req *dto.SettingRequest) (*dto.SettingResponse, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalid("key is required")
	}
	if req.Type == "" {
		req.Type = "string"
	}
	if err := validSettingValue(req.Type, req.Value); err != nil {
		return nil, err
	}

	setting := models.SiteSetting{Key: key, Value: req.Value, Type: req.Type}
	if err := s.settings.Upsert(ctx, &setting, req.Version); err != nil {
		switch {
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, ErrVersionConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	resp := settingResponse(&setting)
	return &resp, nil
}

func (s *SettingsService) Delete(ctx context.Context, key string) error {
	ok, err := s.settings.Delete(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SeedDefaults inserts DefaultSettings that do not exist yet.
func (s *SettingsService) SeedDefaults(ctx context.Context) error {
	for _, d := range DefaultSettings {
		setting := d
		created, err := s.settings.CreateIfAbsent(ctx, &setting)
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", d.Key, err)
		}
		if created {
			slog.Info("setting seeded", "key", d.Key)
		}
	}
	return nil
}

func validSettingValue(typ, value string) error {
	switch typ {
	case "string":
		if value == "" {
			return invalid("value is required")
		}
	case "bool":
		if _, err := strconv.ParseBool(value); err != nil {
			return invalid("value must be a boolean")
		}
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return invalid("value must be an integer")
		}
	case "json":
		if !json.Valid([]byte(value)) {
			return invalid("value must be valid JSON")
		}
	default:
		return invalid("type must be one of string, bool, int, json")
	}
	return nil
}

func settingResponse(s *models.SiteSetting) dto.SettingResponse {
	return dto.SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Type:      s.Type,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
	}
}
