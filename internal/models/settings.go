package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsRowID is the fixed primary key of the settings singleton row.
const SettingsRowID = 1

// SiteSettings holds the single site-wide configuration document. Each save
// fully replaces the document; the version counter guards against concurrent
// overwrites (compare-and-swap on save).
type SiteSettings struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Document  datatypes.JSON `gorm:"type:json;not null" json:"document"`
	Version   uint           `gorm:"not null;default:0" json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
}
