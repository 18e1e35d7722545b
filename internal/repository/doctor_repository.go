package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	FindByLicense(ctx context.Context, licenseNumber string) (*model.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	// Fails with a foreign-key violation while appointments reference the doctor.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]model.Doctor, int64, error)

	AddSpecialty(ctx context.Context, doctorID, specialtyID uuid.UUID) error
	RemoveSpecialty(ctx context.Context, doctorID, specialtyID uuid.UUID) error
	ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]model.Doctor, error)
	ListSpecialties(ctx context.Context, doctorID uuid.UUID) ([]model.Specialty, error)
}

type GormDoctorRepository struct {
	db *gorm.DB
}

func NewGormDoctorRepository(db *gorm.DB) *GormDoctorRepository {
	return &GormDoctorRepository{db: db}
}

func (r *GormDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *GormDoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	var d model.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormDoctorRepository) FindByLicense(ctx context.Context, licenseNumber string) (*model.Doctor, error) {
	var d model.Doctor
	if err := r.db.WithContext(ctx).Where("license_number = ?", licenseNumber).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormDoctorRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Doctor{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormDoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormDoctorRepository) List(ctx context.Context, limit, offset int) ([]model.Doctor, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Doctor{})

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

	var doctors []model.Doctor
	if err := q.Order("last_name ASC, first_name ASC").Limit(limit).Offset(offset).Find(&doctors).Error; err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *GormDoctorRepository) AddSpecialty(ctx context.Context, doctorID, specialtyID uuid.UUID) error {
	link := model.DoctorSpecialty{DoctorID: doctorID, SpecialtyID: specialtyID}
	return r.db.WithContext(ctx).Create(&link).Error
}

func (r *GormDoctorRepository) RemoveSpecialty(ctx context.Context, doctorID, specialtyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("doctor_id = ? AND specialty_id = ?", doctorID, specialtyID).
		Delete(&model.DoctorSpecialty{}).
		Error
}

func (r *GormDoctorRepository) ListBySpecialty(ctx context.Context, specialtyID uuid.UUID) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := r.db.WithContext(ctx).
		Table("doctors").
		Select("doctors.*").
		Joins("JOIN doctor_specialties ON doctor_specialties.doctor_id = doctors.id").
		Where("doctor_specialties.specialty_id = ?", specialtyID).
		Order("doctors.last_name ASC").
		Scan(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *GormDoctorRepository) ListSpecialties(ctx context.Context, doctorID uuid.UUID) ([]model.Specialty, error) {
	var specialties []model.Specialty
	err := r.db.WithContext(ctx).
		Table("specialties").
		Select("specialties.*").
		Joins("JOIN doctor_specialties ON doctor_specialties.specialty_id = specialties.id").
		Where("doctor_specialties.doctor_id = ?", doctorID).
		Order("specialties.name ASC").
		Scan(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}
