package dto

import (
	"time"

	"github.com/zagros-construction/zagros-api/internal/models"
)

// ProjectRequest is the payload for creating or replacing a project. Updates
// carry the target ID in the body; missing optional fields default to empty.
type ProjectRequest struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Duration    string   `json:"duration"`
}

// ProjectResponse is the wire shape of a project record.
type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Duration    string    `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectListResponse carries one page of projects plus pagination metadata.
type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewProjectResponse maps a model to its response shape.
func NewProjectResponse(p models.Project) ProjectResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      append([]string(nil), images...),
		Category:    p.Category,
		Location:    p.Location,
		Duration:    p.Duration,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
