package dto

import (
	"encoding/json"
	"time"
)

// SettingsSaveRequest replaces the settings document wholesale. When Version
// is supplied it must match the stored version or the save is rejected.
type SettingsSaveRequest struct {
	Document json.RawMessage `json:"document" validate:"required"`
	Version  *uint           `json:"version"`
}

// SettingsResponse returns the current settings document and its version.
type SettingsResponse struct {
	Document  json.RawMessage `json:"document"`
	Version   uint            `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}
