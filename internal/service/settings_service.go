package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gorm.io/datatypes"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/repository"
)

//go:embed settings_schema.json
var settingsSchemaJSON []byte

// defaultSettingsDocument seeds a fresh installation before the first save.
const defaultSettingsDocument = `{
  "company": {
    "name": "Zagros Construction",
    "logo": "",
    "address": "Erbil, Iraq",
    "phone": "+964 XXX XXX XXXX",
    "email": "info@zagros-construction.com",
    "facebook": "",
    "linkedin": "",
    "whatsapp": ""
  },
  "site": {
    "defaultLanguage": "en",
    "enableTestimonials": true,
    "enableBlog": true,
    "enableFAQ": true,
    "maintenanceMode": false,
    "theme": {
      "primary": "#f97316",
      "secondary": "#6366f1"
    }
  },
  "admin": {
    "darkMode": false
  }
}`

// Settings errors surfaced to handlers.
var (
	ErrSettingsInvalid  = errors.New("settings document is invalid")
	ErrSettingsConflict = errors.New("settings were modified concurrently")
)

// SettingsService reads and overwrites the site settings singleton.
type SettingsService interface {
	Get(ctx context.Context) (dto.SettingsResponse, error)
	Save(ctx context.Context, payload dto.SettingsSaveRequest) (dto.SettingsResponse, error)
}

type settingsService struct {
	repo   repository.SettingsRepository
	schema *jsonschema.Schema
	logger zerolog.Logger
}

// NewSettingsService constructs the settings service. Panics if the embedded
// schema does not compile, which is a build defect rather than a runtime
// condition.
func NewSettingsService(repo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("settings_schema.json", bytes.NewReader(settingsSchemaJSON)); err != nil {
		panic(fmt.Sprintf("settings schema resource: %v", err))
	}
	schema, err := compiler.Compile("settings_schema.json")
	if err != nil {
		panic(fmt.Sprintf("settings schema compile: %v", err))
	}

	return &settingsService{
		repo:   repo,
		schema: schema,
		logger: logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) (dto.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.SettingsResponse{
			Document: []byte(defaultSettingsDocument),
			Version:  0,
		}, nil
	}
	if err != nil {
		return dto.SettingsResponse{}, err
	}

	return dto.SettingsResponse{
		Document:  []byte(settings.Document),
		Version:   settings.Version,
		UpdatedAt: settings.UpdatedAt,
	}, nil
}

func (s *settingsService) Save(ctx context.Context, payload dto.SettingsSaveRequest) (dto.SettingsResponse, error) {
	if len(payload.Document) == 0 {
		return dto.SettingsResponse{}, ErrSettingsInvalid
	}

	var document interface{}
	if err := json.Unmarshal(payload.Document, &document); err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
	}
	if err := s.schema.Validate(document); err != nil {
		return dto.SettingsResponse{}, fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
	}

	settings, err := s.repo.Save(ctx, datatypes.JSON(payload.Document), payload.Version)
	if errors.Is(err, repository.ErrVersionConflict) {
		return dto.SettingsResponse{}, ErrSettingsConflict
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save settings")
		return dto.SettingsResponse{}, err
	}

	return dto.SettingsResponse{
		Document:  []byte(settings.Document),
		Version:   settings.Version,
		UpdatedAt: settings.UpdatedAt,
	}, nil
}
