package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status. No transition graph is enforced: any value may
// overwrite any other through a plain update.
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusCheckedIn  AppointmentStatus = "checked_in"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCheckedIn,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// appointments. The check constraint only guarantees end > start; nothing
// at this level prevents double-booking a doctor or a room.
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	PatientID uuid.UUID  `gorm:"type:uuid;not null;index"`
	DoctorID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	RoomID    *uuid.UUID `gorm:"type:uuid;index"`

	// Receptionist (or other staff) who booked it.
	CreatedByID *uuid.UUID `gorm:"type:uuid;index"`

	ScheduledStart time.Time `gorm:"type:timestamp with time zone;not null;index"`
	ScheduledEnd   time.Time `gorm:"type:timestamp with time zone;not null;check:chk_appointments_time,scheduled_end > scheduled_start"`

	Status AppointmentStatus `gorm:"type:varchar(32);not null;default:'scheduled';index"`

	Reason string `gorm:"type:text"`
	Notes  string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Patient   *Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Doctor    *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Room      *Room    `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID"`
}

// appointment_services — services rendered during an appointment.
// UnitPrice is a point-in-time copy of the catalog price, stored
// independently so later catalog edits do not rewrite history.
type AppointmentService struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID     uuid.UUID `gorm:"type:uuid;primaryKey"`

	Quantity  int     `gorm:"not null;default:1"`
	UnitPrice float64 `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service     *Service     `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
