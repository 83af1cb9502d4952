package dto

import (
	"time"

	"github.com/zagros-construction/zagros-api/internal/models"
)

// ServiceRequest is the payload for creating or replacing a service.
type ServiceRequest struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// ServiceResponse is the wire shape of a service record.
type ServiceResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ServiceListResponse carries one page of services plus pagination metadata.
type ServiceListResponse struct {
	Items      []ServiceResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// NewServiceResponse maps a model to its response shape.
func NewServiceResponse(s models.Service) ServiceResponse {
	images := s.Images
	if images == nil {
		images = []string{}
	}
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Images:      append([]string(nil), images...),
		Category:    s.Category,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
