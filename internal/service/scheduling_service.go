package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
)

var (
	ErrInvalidTimeRange   = errors.New("scheduled end must be after start")
	ErrDoctorUnavailable  = errors.New("doctor already booked for this time")
	ErrRoomUnavailable    = errors.New("room already booked for this time")
	ErrUnknownStatus      = errors.New("unknown appointment status")
	ErrNoServices         = errors.New("appointment needs at least one service")
	ErrUnknownServiceLine = errors.New("unknown service in appointment lines")
)

// BookingRequest describes a visit to be scheduled, typically entered by
// the reception desk.
type BookingRequest struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	RoomID      *uuid.UUID
	CreatedByID *uuid.UUID
	Start       time.Time
	End         time.Time
	Reason      string
	ServiceIDs  []uuid.UUID
	Quantities  map[uuid.UUID]int // optional, defaults to 1 per service
}

// SchedulingService books appointments and moves them through their
// statuses. The schema itself does not prevent double-booking, so the
// overlap check here is the only guard.
type SchedulingService struct {
	db          *gorm.DB
	apptRepo    repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	log         *zap.Logger
}

func NewSchedulingService(
	db *gorm.DB,
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	log *zap.Logger,
) *SchedulingService {
	return &SchedulingService{
		db:          db,
		apptRepo:    apptRepo,
		serviceRepo: serviceRepo,
		log:         log,
	}
}

// Book creates the appointment and its service lines in one transaction.
// Each line snapshots the catalog price at booking time.
func (s *SchedulingService) Book(ctx context.Context, req BookingRequest) (*model.Appointment, error) {
	if !req.End.After(req.Start) {
		return nil, ErrInvalidTimeRange
	}
	if len(req.ServiceIDs) == 0 {
		return nil, ErrNoServices
	}

	services, err := s.serviceRepo.ListByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}
	if len(services) != len(req.ServiceIDs) {
		return nil, ErrUnknownServiceLine
	}

	appt := &model.Appointment{
		ID:             uuid.New(),
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		RoomID:         req.RoomID,
		CreatedByID:    req.CreatedByID,
		ScheduledStart: req.Start,
		ScheduledEnd:   req.End,
		Status:         model.AppointmentStatusScheduled,
		Reason:         req.Reason,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The overlap check shares the transaction with the insert, so
		// the window between check and create stays inside one snapshot.
		conflicts, err := repository.NewGormAppointmentRepository(tx).
			FindOverlapping(ctx, req.DoctorID, req.RoomID, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("find overlapping: %w", err)
		}
		for _, c := range conflicts {
			if c.DoctorID == req.DoctorID {
				return ErrDoctorUnavailable
			}
			if req.RoomID != nil && c.RoomID != nil && *c.RoomID == *req.RoomID {
				return ErrRoomUnavailable
			}
		}

		if err := tx.Create(appt).Error; err != nil {
			return err
		}
		for _, svc := range services {
			qty := 1
			if req.Quantities != nil && req.Quantities[svc.ID] > 0 {
				qty = req.Quantities[svc.ID]
			}
			line := model.AppointmentService{
				AppointmentID: appt.ID,
				ServiceID:     svc.ID,
				Quantity:      qty,
				UnitPrice:     svc.Price, // point-in-time copy
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	s.log.Info("appointment booked",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("doctor_id", req.DoctorID.String()),
		zap.Time("start", req.Start),
	)
	return appt, nil
}

// ReplaceServices swaps the appointment's service lines for a new set,
// snapshotting the current catalog prices the same way Book does.
func (s *SchedulingService) ReplaceServices(
	ctx context.Context,
	appointmentID uuid.UUID,
	serviceIDs []uuid.UUID,
	quantities map[uuid.UUID]int,
) error {
	if len(serviceIDs) == 0 {
		return ErrNoServices
	}
	if _, err := s.apptRepo.GetByID(ctx, appointmentID); err != nil {
		return err
	}

	services, err := s.serviceRepo.ListByIDs(ctx, serviceIDs)
	if err != nil {
		return fmt.Errorf("load services: %w", err)
	}
	if len(services) != len(serviceIDs) {
		return ErrUnknownServiceLine
	}

	lines := make([]model.AppointmentService, 0, len(services))
	for _, svc := range services {
		qty := 1
		if quantities != nil && quantities[svc.ID] > 0 {
			qty = quantities[svc.ID]
		}
		lines = append(lines, model.AppointmentService{
			ServiceID: svc.ID,
			Quantity:  qty,
			UnitPrice: svc.Price,
		})
	}
	return s.apptRepo.ReplaceServices(ctx, appointmentID, lines)
}

// UpdateStatus overwrites the status. Any known value may replace any
// other; the schema defines no transition graph.
func (s *SchedulingService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	if !model.ValidAppointmentStatus(status) {
		return ErrUnknownStatus
	}
	return s.apptRepo.UpdateStatus(ctx, id, status)
}

func (s *SchedulingService) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.apptRepo.UpdateStatus(ctx, id, model.AppointmentStatusCancelled)
}

// DoctorDay lists a doctor's appointments for the day containing t.
func (s *SchedulingService) DoctorDay(ctx context.Context, doctorID uuid.UUID, t time.Time) ([]model.Appointment, error) {
	day := t.UTC().Truncate(24 * time.Hour)
	appts, _, err := s.apptRepo.ListByDoctorRange(ctx, doctorID, day, day.Add(24*time.Hour), 0, 0)
	return appts, err
}
