package dto

import (
	"time"

	"github.com/zagros-construction/zagros-api/internal/models"
)

// ActivityListRequest filters the audit trail.
type ActivityListRequest struct {
	EntityType string
	Action     string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// ActivityResponse is the wire shape of one audit entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	EntityType string                 `json:"entity_type"`
	Action     string                 `json:"action"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityListResponse carries one page of audit entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse maps a model to its response shape.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	metadata := map[string]interface{}(entry.Metadata)
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return ActivityResponse{
		ID:         entry.ID,
		EntityType: entry.EntityType,
		Action:     entry.Action,
		EntityID:   entry.EntityID,
		Metadata:   metadata,
		CreatedAt:  entry.CreatedAt,
	}
}
