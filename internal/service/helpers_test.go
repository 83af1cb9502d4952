package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/zagros-construction/zagros-api/internal/catalog"
	"github.com/zagros-construction/zagros-api/internal/models"
	"github.com/zagros-construction/zagros-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// projectRepoStub is an in-memory ProjectRepository for service tests.
type projectRepoStub struct {
	items  []models.Project
	nextID uint
	err    error
}

func (r *projectRepoStub) List(_ context.Context, filter repository.RecordFilter) ([]models.Project, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	matched := catalog.Apply(r.items, catalog.Filter{
		Search:   filter.Search,
		Category: filter.Category,
		From:     filter.From,
		To:       filter.To,
	}, func(p models.Project) catalog.Fields {
		return catalog.Fields{Name: p.Name, Description: p.Description, Category: p.Category, CreatedAt: p.CreatedAt}
	})
	total := int64(len(matched))
	page, _ := catalog.Paginate(matched, filter.Page, filter.PageSize)
	return page, total, nil
}

func (r *projectRepoStub) GetByID(_ context.Context, id uint) (models.Project, error) {
	if r.err != nil {
		return models.Project{}, r.err
	}
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Project{}, repository.ErrNotFound
}

func (r *projectRepoStub) Create(_ context.Context, project *models.Project) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	project.ID = r.nextID
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	project.UpdatedAt = project.CreatedAt
	r.items = append([]models.Project{*project}, r.items...)
	return nil
}

func (r *projectRepoStub) Update(_ context.Context, project *models.Project) error {
	if r.err != nil {
		return r.err
	}
	for i, item := range r.items {
		if item.ID == project.ID {
			project.CreatedAt = item.CreatedAt
			project.UpdatedAt = time.Now().UTC()
			r.items[i] = *project
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *projectRepoStub) Delete(_ context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	kept := r.items[:0]
	for _, item := range r.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

// serviceRepoStub mirrors projectRepoStub for the service catalog.
type serviceRepoStub struct {
	items  []models.Service
	nextID uint
	err    error
}

func (r *serviceRepoStub) List(_ context.Context, filter repository.RecordFilter) ([]models.Service, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	matched := catalog.Apply(r.items, catalog.Filter{
		Search:   filter.Search,
		Category: filter.Category,
		From:     filter.From,
		To:       filter.To,
	}, func(s models.Service) catalog.Fields {
		return catalog.Fields{Name: s.Name, Description: s.Description, Category: s.Category, CreatedAt: s.CreatedAt}
	})
	total := int64(len(matched))
	page, _ := catalog.Paginate(matched, filter.Page, filter.PageSize)
	return page, total, nil
}

func (r *serviceRepoStub) GetByID(_ context.Context, id uint) (models.Service, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Service{}, repository.ErrNotFound
}

func (r *serviceRepoStub) Create(_ context.Context, service *models.Service) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	service.ID = r.nextID
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}
	service.UpdatedAt = service.CreatedAt
	r.items = append([]models.Service{*service}, r.items...)
	return nil
}

func (r *serviceRepoStub) Update(_ context.Context, service *models.Service) error {
	for i, item := range r.items {
		if item.ID == service.ID {
			service.CreatedAt = item.CreatedAt
			r.items[i] = *service
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *serviceRepoStub) Delete(_ context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	kept := r.items[:0]
	for _, item := range r.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

// activityRepoStub collects audit entries without persistence.
type activityRepoStub struct {
	entries []models.ActivityLog
	nextID  uint
	err     error
}

func (r *activityRepoStub) Create(_ context.Context, entry *models.ActivityLog) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *activityRepoStub) List(_ context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	matched := make([]models.ActivityLog, 0, len(r.entries))
	for _, entry := range r.entries {
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, int64(len(matched)), nil
}

// settingsRepoStub holds the settings singleton in memory with CAS semantics.
type settingsRepoStub struct {
	stored *models.SiteSettings
}

func (r *settingsRepoStub) Get(_ context.Context) (models.SiteSettings, error) {
	if r.stored == nil {
		return models.SiteSettings{}, repository.ErrNotFound
	}
	return *r.stored, nil
}

func (r *settingsRepoStub) Save(_ context.Context, document datatypes.JSON, expectedVersion *uint) (models.SiteSettings, error) {
	if r.stored == nil {
		if expectedVersion != nil && *expectedVersion != 0 {
			return models.SiteSettings{}, repository.ErrVersionConflict
		}
		r.stored = &models.SiteSettings{ID: models.SettingsRowID, Document: document, Version: 1, UpdatedAt: time.Now().UTC()}
		return *r.stored, nil
	}
	if expectedVersion != nil && *expectedVersion != r.stored.Version {
		return models.SiteSettings{}, repository.ErrVersionConflict
	}
	r.stored.Document = document
	r.stored.Version++
	r.stored.UpdatedAt = time.Now().UTC()
	return *r.stored, nil
}

// recorderStub captures recorded activity entries.
type recorderStub struct {
	entries []ActivityEntry
	err     error
}

func (r *recorderStub) Record(_ context.Context, entry ActivityEntry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}
