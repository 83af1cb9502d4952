package repository

import (
	"context"
	"path/filepath"
	"time"

	"github.com/zagros-construction/zagros-api/internal/models"
)

type activityFileRepository struct {
	collection *fileCollection[models.ActivityLog]
	now        func() time.Time
}

// NewActivityLogFileRepository constructs the file-backed audit trail
// repository. Entries are stored newest-first and capped per entity type.
func NewActivityLogFileRepository(dataDir string) ActivityLogRepository {
	return &activityFileRepository{
		collection: newFileCollection[models.ActivityLog](filepath.Join(dataDir, "activity_log.json")),
		now:        time.Now,
	}
}

func (r *activityFileRepository) Create(_ context.Context, entry *models.ActivityLog) error {
	return r.collection.mutate(func(doc *fileDocument[models.ActivityLog]) error {
		entry.ID = doc.NextID
		doc.NextID++
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = r.now().UTC()
		}

		items := append([]models.ActivityLog{*entry}, doc.Items...)

		// Evict the oldest entries of this entity type beyond the cap.
		kept := make([]models.ActivityLog, 0, len(items))
		sameType := 0
		for _, item := range items {
			if item.EntityType == entry.EntityType {
				if sameType >= models.ActivityLogCap {
					continue
				}
				sameType++
			}
			kept = append(kept, item)
		}
		doc.Items = kept
		return nil
	})
}

func (r *activityFileRepository) List(_ context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	doc, err := r.collection.read()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]models.ActivityLog, 0, len(doc.Items))
	for _, entry := range doc.Items {
		if filter.EntityType != "" && entry.EntityType != filter.EntityType {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.From != nil && entry.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, entry)
	}

	total := int64(len(matched))
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		start := (page - 1) * filter.PageSize
		if start >= len(matched) {
			return []models.ActivityLog{}, total, nil
		}
		end := start + filter.PageSize
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}
