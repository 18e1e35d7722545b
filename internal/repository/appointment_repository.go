package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// Plain status overwrite; no transition graph is enforced.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	ListByDoctorRange(ctx context.Context, doctorID uuid.UUID, from, to time.Time, limit, offset int) ([]model.Appointment, int64, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]model.Appointment, int64, error)
	// Appointments colliding with [start, end) for the given doctor, or
	// for the given room when roomID is non-nil. Cancelled and no-show
	// rows do not block a slot.
	FindOverlapping(ctx context.Context, doctorID uuid.UUID, roomID *uuid.UUID, start, end time.Time) ([]model.Appointment, error)
	AddService(ctx context.Context, line *model.AppointmentService) error
	// Swaps the appointment's service lines for the given set, in one
	// transaction.
	ReplaceServices(ctx context.Context, appointmentID uuid.UUID, lines []model.AppointmentService) error
	ListServices(ctx context.Context, appointmentID uuid.UUID) ([]model.AppointmentService, error)
}

type GormAppointmentRepository struct {
	db *gorm.DB
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

func (r *GormAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	if err := r.db.WithContext(ctx).Preload("Services").First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAppointmentRepository) ListByDoctorRange(
	ctx context.Context,
	doctorID uuid.UUID,
	from, to time.Time,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Where("scheduled_start >= ? AND scheduled_start < ?", from, to)
	return listAppointments(q, limit, offset)
}

func (r *GormAppointmentRepository) ListByPatient(
	ctx context.Context,
	patientID uuid.UUID,
	limit, offset int,
) ([]model.Appointment, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("patient_id = ?", patientID)
	return listAppointments(q, limit, offset)
}

func listAppointments(q *gorm.DB, limit, offset int) ([]model.Appointment, int64, error) {
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

	var appts []model.Appointment
	if err := q.Order("scheduled_start ASC").Limit(limit).Offset(offset).Find(&appts).Error; err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

func (r *GormAppointmentRepository) FindOverlapping(
	ctx context.Context,
	doctorID uuid.UUID,
	roomID *uuid.UUID,
	start, end time.Time,
) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("status NOT IN ?", []model.AppointmentStatus{
			model.AppointmentStatusCancelled,
			model.AppointmentStatusNoShow,
		}).
		Where("scheduled_start < ? AND scheduled_end > ?", end, start)

	if roomID != nil {
		q = q.Where("doctor_id = ? OR room_id = ?", doctorID, *roomID)
	} else {
		q = q.Where("doctor_id = ?", doctorID)
	}

	var appts []model.Appointment
	if err := q.Order("scheduled_start ASC").Find(&appts).Error; err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *GormAppointmentRepository) AddService(ctx context.Context, line *model.AppointmentService) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *GormAppointmentRepository) ReplaceServices(
	ctx context.Context,
	appointmentID uuid.UUID,
	lines []model.AppointmentService,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", appointmentID).
			Delete(&model.AppointmentService{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].AppointmentID = appointmentID
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormAppointmentRepository) ListServices(ctx context.Context, appointmentID uuid.UUID) ([]model.AppointmentService, error) {
	var lines []model.AppointmentService
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
