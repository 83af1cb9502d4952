package repository

import (
	"context"
	"path/filepath"
	"time"

	"gorm.io/datatypes"

	"github.com/zagros-construction/zagros-api/internal/models"
)

type settingsFileRepository struct {
	collection *fileCollection[models.SiteSettings]
	now        func() time.Time
}

// NewSettingsFileRepository constructs the file-backed settings repository.
// The collection holds at most one item, the singleton row.
func NewSettingsFileRepository(dataDir string) SettingsRepository {
	return &settingsFileRepository{
		collection: newFileCollection[models.SiteSettings](filepath.Join(dataDir, "settings.json")),
		now:        time.Now,
	}
}

func (r *settingsFileRepository) Get(_ context.Context) (models.SiteSettings, error) {
	doc, err := r.collection.read()
	if err != nil {
		return models.SiteSettings{}, err
	}
	if len(doc.Items) == 0 {
		return models.SiteSettings{}, ErrNotFound
	}
	return doc.Items[0], nil
}

func (r *settingsFileRepository) Save(_ context.Context, document datatypes.JSON, expectedVersion *uint) (models.SiteSettings, error) {
	var saved models.SiteSettings
	err := r.collection.mutate(func(doc *fileDocument[models.SiteSettings]) error {
		if len(doc.Items) == 0 {
			if expectedVersion != nil && *expectedVersion != 0 {
				return ErrVersionConflict
			}
			saved = models.SiteSettings{
				ID:        models.SettingsRowID,
				Document:  document,
				Version:   1,
				UpdatedAt: r.now().UTC(),
			}
			doc.Items = []models.SiteSettings{saved}
			return nil
		}

		current := doc.Items[0]
		if expectedVersion != nil && *expectedVersion != current.Version {
			return ErrVersionConflict
		}
		saved = models.SiteSettings{
			ID:        models.SettingsRowID,
			Document:  document,
			Version:   current.Version + 1,
			UpdatedAt: r.now().UTC(),
		}
		doc.Items[0] = saved
		return nil
	})
	if err != nil {
		return models.SiteSettings{}, err
	}
	return saved, nil
}
