package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type PrescriptionRepository interface {
	// Creates the prescription together with its items. The unique index
	// on appointment_id rejects a second prescription for the same visit.
	Create(ctx context.Context, p *model.Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]model.Prescription, int64, error)
}

type GormPrescriptionRepository struct {
	db *gorm.DB
}

func NewGormPrescriptionRepository(db *gorm.DB) *GormPrescriptionRepository {
	return &GormPrescriptionRepository{db: db}
}

func (r *GormPrescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormPrescriptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	if err := r.db.WithContext(ctx).Preload("Items").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPrescriptionRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("appointment_id = ?", appointmentID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPrescriptionRepository) ListByDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
	limit, offset int,
) ([]model.Prescription, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Prescription{}).
		Where("doctor_id = ?", doctorID)

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

	var prescriptions []model.Prescription
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&prescriptions).Error; err != nil {
		return nil, 0, err
	}
	return prescriptions, total, nil
}
