package service

import (
	"context"
	"errors"
	"io"
	"math"
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

// ErrProjectNotFound is returned when a targeted project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ListQuery narrows a catalog listing. Zero values impose no restriction; a
// non-positive PageSize returns the full filtered list.
type ListQuery struct {
	Search   string
	Category string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ProjectService implements project catalog reads and admin mutations.
type ProjectService interface {
	List(ctx context.Context, query ListQuery) (dto.ProjectListResponse, error)
	Create(ctx context.Context, payload dto.ProjectRequest) (dto.ProjectResponse, error)
	Update(ctx context.Context, payload dto.ProjectRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) (dto.BulkResult, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ImportCSV(ctx context.Context, r io.Reader) (dto.BulkResult, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(repo repository.ProjectRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) List(ctx context.Context, query ListQuery) (dto.ProjectListResponse, error) {
	start := time.Now()
	defer func() {
		observability.CatalogLatency().WithLabelValues("projects").Observe(time.Since(start).Seconds())
	}()

	filter := repository.RecordFilter{
		Search:   query.Search,
		Category: query.Category,
		From:     query.From,
		To:       query.To,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		observability.CatalogRequests().WithLabelValues("projects", "error").Inc()
		return dto.ProjectListResponse{}, err
	}
	observability.CatalogRequests().WithLabelValues("projects", "success").Inc()

	items := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		items = append(items, dto.NewProjectResponse(project))
	}

	return dto.ProjectListResponse{
		Items:      items,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	}, nil
}

func (s *projectService) Create(ctx context.Context, payload dto.ProjectRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project := models.Project{
		Name:        strings.TrimSpace(payload.Name),
		Description: s.sanitizer.Sanitize(payload.Description),
		Images:      normalizeImages(payload.Images),
		Category:    strings.TrimSpace(payload.Category),
		Location:    strings.TrimSpace(payload.Location),
		Duration:    strings.TrimSpace(payload.Duration),
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return dto.ProjectResponse{}, err
	}

	s.record(ctx, models.ActionAdd, &project.ID, map[string]interface{}{
		"name":     project.Name,
		"category": project.Category,
	})

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, payload dto.ProjectRequest) (dto.ProjectResponse, error) {
	if payload.ID == 0 {
		return dto.ProjectResponse{}, ErrProjectNotFound
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project, err := s.repo.GetByID(ctx, payload.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return dto.ProjectResponse{}, ErrProjectNotFound
	}
	if err != nil {
		return dto.ProjectResponse{}, err
	}

	project.Name = strings.TrimSpace(payload.Name)
	project.Description = s.sanitizer.Sanitize(payload.Description)
	project.Images = normalizeImages(payload.Images)
	project.Category = strings.TrimSpace(payload.Category)
	project.Location = strings.TrimSpace(payload.Location)
	project.Duration = strings.TrimSpace(payload.Duration)

	if err := s.repo.Update(ctx, &project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		s.logger.Error().Err(err).Uint("project_id", payload.ID).Msg("failed to update project")
		return dto.ProjectResponse{}, err
	}

	s.record(ctx, models.ActionUpdate, &project.ID, map[string]interface{}{
		"name":     project.Name,
		"category": project.Category,
	})

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("project_id", id).Msg("failed to delete project")
		return err
	}

	s.record(ctx, models.ActionDelete, &id, nil)
	return nil
}

func (s *projectService) BulkDelete(ctx context.Context, ids []uint) (dto.BulkResult, error) {
	result := dto.BulkResult{}
	deleted := make([]uint, 0, len(ids))
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.logger.Warn().Err(err).Uint("project_id", id).Msg("bulk delete item failed")
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

func (s *projectService) ExportCSV(ctx context.Context) ([]byte, error) {
	projects, _, err := s.repo.List(ctx, repository.RecordFilter{})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(projects))
	for _, project := range projects {
		rows = append(rows, []string{
			project.Name,
			project.Description,
			strings.Join(project.Images, ", "),
			project.Category,
			project.Location,
			project.Duration,
		})
	}

	return writeCSV([]string{"Name", "Description", "Images", "Category", "Location", "Duration"}, rows)
}

func (s *projectService) ImportCSV(ctx context.Context, r io.Reader) (dto.BulkResult, error) {
	rows, err := readCSVRows(r)
	if err != nil {
		return dto.BulkResult{}, err
	}

	result := dto.BulkResult{}
	for _, row := range rows {
		payload := dto.ProjectRequest{
			Name:        row["Name"],
			Description: row["Description"],
			Images:      splitImageList(row["Images"]),
			Category:    row["Category"],
			Location:    row["Location"],
			Duration:    row["Duration"],
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

func (s *projectService) record(ctx context.Context, action string, entityID *uint, metadata map[string]interface{}) {
	if s.recorder == nil {
		return
	}
	entry := ActivityEntry{
		EntityType: models.EntityProject,
		Action:     action,
		EntityID:   entityID,
		Metadata:   metadata,
	}
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record activity")
	}
}

func normalizeImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	cleaned := make([]string, 0, len(images))
	for _, image := range images {
		trimmed := strings.TrimSpace(image)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func paginationMeta(page, pageSize int, total int64) dto.PaginationMeta {
	meta := dto.PaginationMeta{
		Page:       maxInt(page, 1),
		PageSize:   pageSize,
		TotalItems: total,
	}
	if pageSize > 0 {
		meta.TotalPages = int(math.Ceil(float64(total) / float64(pageSize)))
		if meta.Page > meta.TotalPages && meta.TotalPages > 0 {
			meta.Page = meta.TotalPages
		}
	} else {
		meta.TotalPages = 1
	}
	return meta
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
