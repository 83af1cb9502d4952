package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
)

// ErrUnsupportedMedia is returned when an upload is not a recognised image.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// UploadService stores admin image uploads. The authoring editor submits
// data-URIs; decoded payloads are sniffed and written under the upload dir
// with generated names.
type UploadService interface {
	Store(ctx context.Context, payload dto.UploadRequest) (dto.UploadResponse, error)
}

type uploadService struct {
	dir       string
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUploadService constructs the upload service.
func NewUploadService(dir string, validate *validator.Validate, logger zerolog.Logger) UploadService {
	return &uploadService{
		dir:       dir,
		validator: validate,
		logger:    logger.With().Str("component", "upload_service").Logger(),
	}
}

func (s *uploadService) Store(_ context.Context, payload dto.UploadRequest) (dto.UploadResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UploadResponse{}, err
	}

	data, err := decodeDataURI(payload.DataURI)
	if err != nil {
		return dto.UploadResponse{}, fmt.Errorf("%w: %v", ErrUnsupportedMedia, err)
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return dto.UploadResponse{}, ErrUnsupportedMedia
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return dto.UploadResponse{}, fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + detected.Extension()
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to store upload")
		return dto.UploadResponse{}, err
	}

	return dto.UploadResponse{
		Path:      "/" + filepath.ToSlash(filepath.Join(filepath.Base(s.dir), name)),
		MimeType:  detected.String(),
		SizeBytes: int64(len(data)),
	}, nil
}

// decodeDataURI accepts "data:<mime>;base64,<payload>" or a bare base64
// string.
func decodeDataURI(raw string) ([]byte, error) {
	encoded := strings.TrimSpace(raw)
	if strings.HasPrefix(encoded, "data:") {
		idx := strings.Index(encoded, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data uri")
		}
		header := encoded[:idx]
		if !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("unsupported data uri encoding")
		}
		encoded = encoded[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload")
	}
	return data, nil
}
