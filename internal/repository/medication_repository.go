package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type MedicationRepository interface {
	Create(ctx context.Context, medication *model.Medication) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	FindByNameStrength(ctx context.Context, name, strength string) (*model.Medication, error)
	List(ctx context.Context, limit, offset int) ([]model.Medication, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	// Cascades the inventory row; restricted while prescription items
	// reference it; invoice items keep their rows with a nulled reference.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormMedicationRepository struct {
	db *gorm.DB
}

func NewGormMedicationRepository(db *gorm.DB) *GormMedicationRepository {
	return &GormMedicationRepository{db: db}
}

func (r *GormMedicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	return r.db.WithContext(ctx).Create(medication).Error
}

func (r *GormMedicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	var m model.Medication
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMedicationRepository) FindByNameStrength(ctx context.Context, name, strength string) (*model.Medication, error) {
	var m model.Medication
	if err := r.db.WithContext(ctx).
		Where("name = ? AND strength = ?", name, strength).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormMedicationRepository) List(ctx context.Context, limit, offset int) ([]model.Medication, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Medication{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var medications []model.Medication
	if err := q.Order("name ASC, strength ASC").Limit(limit).Offset(offset).Find(&medications).Error; err != nil {
		return nil, 0, err
	}
	return medications, total, nil
}

func (r *GormMedicationRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Medication{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormMedicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Medication{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
