package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type SpecialtyRepository interface {
	Create(ctx context.Context, specialty *model.Specialty) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error)
	List(ctx context.Context) ([]model.Specialty, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormSpecialtyRepository struct {
	db *gorm.DB
}

func NewGormSpecialtyRepository(db *gorm.DB) *GormSpecialtyRepository {
	return &GormSpecialtyRepository{db: db}
}

func (r *GormSpecialtyRepository) Create(ctx context.Context, specialty *model.Specialty) error {
	return r.db.WithContext(ctx).Create(specialty).Error
}

func (r *GormSpecialtyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Specialty, error) {
	var s model.Specialty
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormSpecialtyRepository) List(ctx context.Context) ([]model.Specialty, error) {
	var specialties []model.Specialty
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *GormSpecialtyRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Specialty{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormSpecialtyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Specialty{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
