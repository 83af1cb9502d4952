package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/zagros-construction/zagros-api/internal/catalog"
	"github.com/zagros-construction/zagros-api/internal/models"
)

// ServiceRepository manages service catalog persistence. Semantics mirror
// ProjectRepository.
type ServiceRepository interface {
	List(ctx context.Context, filter RecordFilter) ([]models.Service, int64, error)
	GetByID(ctx context.Context, id uint) (models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint) error
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository constructs the SQL-backed service repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(ctx context.Context, filter RecordFilter) ([]models.Service, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Service{})
	query = applyRecordFilter(query, filter)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := catalog.ClampPage(filter.Page, int(total), filter.PageSize)
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var services []models.Service
	if err := query.Order("created_at DESC, id DESC").Find(&services).Error; err != nil {
		return nil, 0, err
	}

	return services, total, nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).First(&service, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Service{}, ErrNotFound
	}
	return service, err
}

func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) Update(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, id).Error
}
