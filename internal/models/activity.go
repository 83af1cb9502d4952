package models

import (
	"time"

	"gorm.io/datatypes"
)

// Entity types recorded in the activity log.
const (
	EntityProject = "project"
	EntityService = "service"
)

// Actions recorded in the activity log.
const (
	ActionAdd        = "add"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionBulkDelete = "bulk_delete"
)

// ActivityLogCap is the maximum number of retained entries per entity type;
// the oldest entry is evicted when the cap is exceeded.
const ActivityLogCap = 50

// ActivityLog captures one mutating admin action for the audit trail.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	EntityType string            `gorm:"size:32;not null;index" json:"entity_type"`
	Action     string            `gorm:"size:32;not null" json:"action"`
	EntityID   *uint             `json:"entity_id"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
}
