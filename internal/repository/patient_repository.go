package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	FindByNationalID(ctx context.Context, nationalID string) (*model.Patient, error)
	// Case-insensitive search over first/last name.
	Search(ctx context.Context, query string, limit, offset int) ([]model.Patient, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, limit, offset int) ([]model.Patient, int64, error)

	AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID, isPrimary bool) error
	SetPrimaryDoctor(ctx context.Context, patientID, doctorID uuid.UUID) error
	RemoveDoctor(ctx context.Context, patientID, doctorID uuid.UUID) error
	ListDoctors(ctx context.Context, patientID uuid.UUID) ([]model.Doctor, error)
}

type GormPatientRepository struct {
	db *gorm.DB
}

func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

func (r *GormPatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *GormPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPatientRepository) FindByNationalID(ctx context.Context, nationalID string) (*model.Patient, error) {
	var p model.Patient
	if err := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormPatientRepository) Search(ctx context.Context, query string, limit, offset int) ([]model.Patient, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Patient{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ?", like, like)
	}
	return listPatients(q, limit, offset)
}

func (r *GormPatientRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Patient{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *GormPatientRepository) List(ctx context.Context, limit, offset int) ([]model.Patient, int64, error) {
	return listPatients(r.db.WithContext(ctx).Model(&model.Patient{}), limit, offset)
}

func listPatients(q *gorm.DB, limit, offset int) ([]model.Patient, int64, error) {
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

	var patients []model.Patient
	if err := q.Order("last_name ASC, first_name ASC").Limit(limit).Offset(offset).Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *GormPatientRepository) AssignDoctor(ctx context.Context, patientID, doctorID uuid.UUID, isPrimary bool) error {
	link := model.PatientDoctor{
		PatientID:  patientID,
		DoctorID:   doctorID,
		IsPrimary:  isPrimary,
		AssignedAt: datatypes.Date(time.Now().UTC()),
	}
	return r.db.WithContext(ctx).Create(&link).Error
}

// SetPrimaryDoctor marks one assignment primary and clears the flag on
// the patient's other doctors, in a single transaction.
func (r *GormPatientRepository) SetPrimaryDoctor(ctx context.Context, patientID, doctorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PatientDoctor{}).
			Where("patient_id = ?", patientID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		res := tx.Model(&model.PatientDoctor{}).
			Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormPatientRepository) RemoveDoctor(ctx context.Context, patientID, doctorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).
		Delete(&model.PatientDoctor{}).
		Error
}

func (r *GormPatientRepository) ListDoctors(ctx context.Context, patientID uuid.UUID) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := r.db.WithContext(ctx).
		Table("doctors").
		Select("doctors.*").
		Joins("JOIN patient_doctors ON patient_doctors.doctor_id = doctors.id").
		Where("patient_doctors.patient_id = ?", patientID).
		Order("doctors.last_name ASC").
		Scan(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
