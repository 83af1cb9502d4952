package repository

import (
	"context"
	"path/filepath"
	"time"

	"github.com/zagros-construction/zagros-api/internal/catalog"
	"github.com/zagros-construction/zagros-api/internal/models"
)

type serviceFileRepository struct {
	collection *fileCollection[models.Service]
	now        func() time.Time
}

// NewServiceFileRepository constructs the file-backed service repository.
func NewServiceFileRepository(dataDir string) ServiceRepository {
	return &serviceFileRepository{
		collection: newFileCollection[models.Service](filepath.Join(dataDir, "services.json")),
		now:        time.Now,
	}
}

func serviceFields(s models.Service) catalog.Fields {
	return catalog.Fields{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
	}
}

func (r *serviceFileRepository) List(_ context.Context, filter RecordFilter) ([]models.Service, int64, error) {
	doc, err := r.collection.read()
	if err != nil {
		return nil, 0, err
	}

	matched := catalog.Apply(doc.Items, filter.catalogFilter(), serviceFields)
	total := int64(len(matched))
	page, _ := catalog.Paginate(matched, filter.Page, filter.PageSize)
	return page, total, nil
}

func (r *serviceFileRepository) GetByID(_ context.Context, id uint) (models.Service, error) {
	doc, err := r.collection.read()
	if err != nil {
		return models.Service{}, err
	}
	for _, service := range doc.Items {
		if service.ID == id {
			return service, nil
		}
	}
	return models.Service{}, ErrNotFound
}

func (r *serviceFileRepository) Create(_ context.Context, service *models.Service) error {
	return r.collection.mutate(func(doc *fileDocument[models.Service]) error {
		now := r.now().UTC()
		service.ID = doc.NextID
		doc.NextID++
		if service.CreatedAt.IsZero() {
			service.CreatedAt = now
		}
		service.UpdatedAt = now
		if service.Images == nil {
			service.Images = []string{}
		}
		doc.Items = append([]models.Service{*service}, doc.Items...)
		return nil
	})
}

func (r *serviceFileRepository) Update(_ context.Context, service *models.Service) error {
	return r.collection.mutate(func(doc *fileDocument[models.Service]) error {
		for i, existing := range doc.Items {
			if existing.ID == service.ID {
				service.CreatedAt = existing.CreatedAt
				service.UpdatedAt = r.now().UTC()
				doc.Items[i] = *service
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r *serviceFileRepository) Delete(_ context.Context, id uint) error {
	return r.collection.mutate(func(doc *fileDocument[models.Service]) error {
		remaining := doc.Items[:0]
		for _, service := range doc.Items {
			if service.ID != id {
				remaining = append(remaining, service)
			}
		}
		doc.Items = remaining
		return nil
	})
}
