package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/models"
	"github.com/zagros-construction/zagros-api/internal/observability"
	"github.com/zagros-construction/zagros-api/internal/repository"
)

// ErrServiceNotFound is returned when a targeted service does not exist.
var ErrServiceNotFound = errors.New("service not found")

// ServiceCatalogService implements service catalog reads and admin mutations.
type ServiceCatalogService interface {
	List(ctx context.Context, query ListQuery) (dto.ServiceListResponse, error)
	Create(ctx context.Context, payload dto.ServiceRequest) (dto.ServiceResponse, error)
	Update(ctx context.Context, payload dto.ServiceRequest) (dto.ServiceResponse, error)
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) (dto.BulkResult, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ImportCSV(ctx context.Context, r io.Reader) (dto.BulkResult, error)
}

type serviceCatalogService struct {
	repo      repository.ServiceRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewServiceCatalogService constructs the service catalog service.
func NewServiceCatalogService(repo repository.ServiceRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ServiceCatalogService {
	return &serviceCatalogService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "service_catalog_service").Logger(),
	}
}

func (s *serviceCatalogService) List(ctx context.Context, query ListQuery) (dto.ServiceListResponse, error) {
	start := time.Now()
	defer func() {
		observability.CatalogLatency().WithLabelValues("services").Observe(time.Since(start).Seconds())
	}()

	filter := repository.RecordFilter{
		Search:   query.Search,
		Category: query.Category,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	services, total, err := s.repo.List(ctx, filter)
	if err != nil {
		observability.CatalogRequests().WithLabelValues("services", "error").Inc()
		return dto.ServiceListResponse{}, err
	}
	observability.CatalogRequests().WithLabelValues("services", "success").Inc()

	items := make([]dto.ServiceResponse, 0, len(services))
	for _, service := range services {
		items = append(items, dto.NewServiceResponse(service))
	}

	return dto.ServiceListResponse{
		Items:      items,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	}, nil
}

func (s *serviceCatalogService) Create(ctx context.Context, payload dto.ServiceRequest) (dto.ServiceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ServiceResponse{}, err
	}

	service := models.Service{
		Name:        strings.TrimSpace(payload.Name),
		Description: s.sanitizer.Sanitize(payload.Description),
		Images:      normalizeImages(payload.Images),
		Category:    strings.TrimSpace(payload.Category),
	}

	if err := s.repo.Create(ctx, &service); err != nil {
		s.logger.Error().Err(err).Msg("failed to create service")
		return dto.ServiceResponse{}, err
	}

	s.record(ctx, models.ActionAdd, &service.ID, map[string]interface{}{
		"name":     service.Name,
		"category": service.Category,
	})

	return dto.NewServiceResponse(service), nil
}

func (s *serviceCatalogService) Update(ctx context.Context, payload dto.ServiceRequest) (dto.ServiceResponse, error) {
	if payload.ID == 0 {
		return dto.ServiceResponse{}, ErrServiceNotFound
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.ServiceResponse{}, err
	}

	service, err := s.repo.GetByID(ctx, payload.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.ServiceResponse{}, ErrServiceNotFound
	}
	if err != nil {
		return dto.ServiceResponse{}, err
	}

	service.Name = strings.TrimSpace(payload.Name)
	service.Description = s.sanitizer.Sanitize(payload.Description)
	service.Images = normalizeImages(payload.Images)
	service.Category = strings.TrimSpace(payload.Category)

	if err := s.repo.Update(ctx, &service); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ServiceResponse{}, ErrServiceNotFound
		}
		s.logger.Error().Err(err).Uint("service_id", payload.ID).Msg("failed to update service")
		return dto.ServiceResponse{}, err
	}

	s.record(ctx, models.ActionUpdate, &service.ID, map[string]interface{}{
		"name":     service.Name,
		"category": service.Category,
	})

	return dto.NewServiceResponse(service), nil
}

func (s *serviceCatalogService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("service_id", id).Msg("failed to delete service")
		return err
	}

	s.record(ctx, models.ActionDelete, &id, nil)
	return nil
}

func (s *serviceCatalogService) BulkDelete(ctx context.Context, ids []uint) (dto.BulkResult, error) {
	result := dto.BulkResult{}
	deleted := make([]uint, 0, len(ids))
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.logger.Warn().Err(err).Uint("service_id", id).Msg("bulk delete item failed")
			result.Failed++
			continue
		}
		result.Succeeded++
		deleted = append(deleted, id)
	}

	if len(deleted) > 0 {
		s.record(ctx, models.ActionBulkDelete, nil, map[string]interface{}{"ids": deleted})
	}

	return result, nil
}

func (s *serviceCatalogService) ExportCSV(ctx context.Context) ([]byte, error) {
	services, _, err := s.repo.List(ctx, repository.RecordFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(services))
	for _, service := range services {
		rows = append(rows, []string{
			service.Name,
			service.Description,
			strings.Join(service.Images, ", "),
			service.Category,
		})
	}

	return writeCSV([]string{"Name", "Description", "Images", "Category"}, rows)
}

func (s *serviceCatalogService) ImportCSV(ctx context.Context, r io.Reader) (dto.BulkResult, error) {
	rows, err := readCSVRows(r)
	if err != nil {
		return dto.BulkResult{}, err
	}

	result := dto.BulkResult{}
	for _, row := range rows {
		payload := dto.ServiceRequest{
			Name:        row["Name"],
			Description: row["Description"],
			Images:      splitImageList(row["Images"]),
			Category:    row["Category"],
		}
		if payload.Name == "" || payload.Description == "" || payload.Category == "" {
			result.Failed++
			continue
		}
		if _, err := s.Create(ctx, payload); err != nil {
			s.logger.Warn().Err(err).Str("name", payload.Name).Msg("csv import row failed")
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	return result, nil
}

func (s *serviceCatalogService) record(ctx context.Context, action string, entityID *uint, metadata map[string]interface{}) {
	if s.recorder == nil {
		return
	}
	entry := ActivityEntry{
		EntityType: models.EntityService,
		Action:     action,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}
