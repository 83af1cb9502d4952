package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is a completed or ongoing construction project shown in the public
// portfolio and managed from the admin console.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImagesRaw   datatypes.JSON `gorm:"column:images;type:json" json:"-"`
	Category    string         `gorm:"size:128;index" json:"category"`
	Location    string         `gorm:"size:255" json:"location"`
	Duration    string         `gorm:"size:128" json:"duration"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Images      []string       `gorm:"-" json:"images"`
}

// BeforeSave serialises the ordered image list into the JSON column.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	raw, err := encodeImages(p.Images)
	if err != nil {
		return err
	}
	p.ImagesRaw = raw
	return nil
}

// AfterFind hydrates the image list after retrieval.
func (p *Project) AfterFind(tx *gorm.DB) error {
	images, err := decodeImages(p.ImagesRaw)
	if err != nil {
		return err
	}
	p.Images = images
	return nil
}

// Service is an offered service line (e.g. road construction, surveying)
// listed in the public catalog.
type Service struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImagesRaw   datatypes.JSON `gorm:"column:images;type:json" json:"-"`
	Category    string         `gorm:"size:128;index" json:"category"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Images      []string       `gorm:"-" json:"images"`
}

// BeforeSave serialises the ordered image list into the JSON column.
func (s *Service) BeforeSave(tx *gorm.DB) error {
	raw, err := encodeImages(s.Images)
	if err != nil {
		return err
	}
	s.ImagesRaw = raw
	return nil
}

// AfterFind hydrates the image list after retrieval.
func (s *Service) AfterFind(tx *gorm.DB) error {
	images, err := decodeImages(s.ImagesRaw)
	if err != nil {
		return err
	}
	s.Images = images
	return nil
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeImages(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}
