package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zagros-construction/zagros-api/internal/models"
)

// SettingsRepository persists the site settings singleton. Save fully
// replaces the document; when expectedVersion is non-nil the write only
// succeeds if the stored version still matches (compare-and-swap), otherwise
// it is last-write-wins.
type SettingsRepository interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	Save(ctx context.Context, document datatypes.JSON, expectedVersion *uint) (models.SiteSettings, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs the SQL-backed settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.WithContext(ctx).First(&settings, models.SettingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SiteSettings{}, ErrNotFound
	}
	return settings, err
}

func (r *settingsRepository) Save(ctx context.Context, document datatypes.JSON, expectedVersion *uint) (models.SiteSettings, error) {
	var saved models.SiteSettings
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.SiteSettings
		err := tx.First(&current, models.SettingsRowID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if expectedVersion != nil && *expectedVersion != 0 {
				return ErrVersionConflict
			}
			saved = models.SiteSettings{ID: models.SettingsRowID, Document: document, Version: 1}
			return tx.Create(&saved).Error
		case err != nil:
			return err
		}

		if expectedVersion != nil && *expectedVersion != current.Version {
			return ErrVersionConflict
		}

		result := tx.Model(&models.SiteSettings{}).
			Where("id = ? AND version = ?", models.SettingsRowID, current.Version).
			Updates(map[string]interface{}{
				"document": document,
				"version":  current.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		return tx.First(&saved, models.SettingsRowID).Error
	})
	if err != nil {
		return models.SiteSettings{}, err
	}
	return saved, nil
}
