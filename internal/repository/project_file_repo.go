package repository

import (
	"context"
	"path/filepath"
	"time"

	"github.com/zagros-construction/zagros-api/internal/catalog"
	"github.com/zagros-construction/zagros-api/internal/models"
)

type projectFileRepository struct {
	collection *fileCollection[models.Project]
	now        func() time.Time
}

// NewProjectFileRepository constructs the file-backed project repository.
// Records are stored newest-first, matching the SQL backend's descending
// creation order.
func NewProjectFileRepository(dataDir string) ProjectRepository {
	return &projectFileRepository{
		collection: newFileCollection[models.Project](filepath.Join(dataDir, "projects.json")),
		now:        time.Now,
	}
}

func projectFields(p models.Project) catalog.Fields {
	return catalog.Fields{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
	}
}

func (r *projectFileRepository) List(_ context.Context, filter RecordFilter) ([]models.Project, int64, error) {
	doc, err := r.collection.read()
	if err != nil {
		return nil, 0, err
	}

	matched := catalog.Apply(doc.Items, filter.catalogFilter(), projectFields)
	total := int64(len(matched))
	page, _ := catalog.Paginate(matched, filter.Page, filter.PageSize)
	return page, total, nil
}

func (r *projectFileRepository) GetByID(_ context.Context, id uint) (models.Project, error) {
	doc, err := r.collection.read()
	if err != nil {
		return models.Project{}, err
	}
	for _, project := range doc.Items {
		if project.ID == id {
			return project, nil
		}
	}
	return models.Project{}, ErrNotFound
}

func (r *projectFileRepository) Create(_ context.Context, project *models.Project) error {
	return r.collection.mutate(func(doc *fileDocument[models.Project]) error {
		now := r.now().UTC()
		project.ID = doc.NextID
		doc.NextID++
		if project.CreatedAt.IsZero() {
			project.CreatedAt = now
		}
		project.UpdatedAt = now
		if project.Images == nil {
			project.Images = []string{}
		}
		doc.Items = append([]models.Project{*project}, doc.Items...)
		return nil
	})
}

func (r *projectFileRepository) Update(_ context.Context, project *models.Project) error {
	return r.collection.mutate(func(doc *fileDocument[models.Project]) error {
		for i, existing := range doc.Items {
			if existing.ID == project.ID {
				project.CreatedAt = existing.CreatedAt
				project.UpdatedAt = r.now().UTC()
				doc.Items[i] = *project
				return nil
			}
		}
		return ErrNotFound
	})
}

func (r *projectFileRepository) Delete(_ context.Context, id uint) error {
	return r.collection.mutate(func(doc *fileDocument[models.Project]) error {
		remaining := doc.Items[:0]
		for _, project := range doc.Items {
			if project.ID != id {
				remaining = append(remaining, project)
			}
		}
		doc.Items = remaining
		return nil
	})
}
