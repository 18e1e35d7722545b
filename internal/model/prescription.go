package model

import (
	"time"

	"github.com/google/uuid"
)

// prescriptions — at most one per appointment (unique FK), authored by
// exactly one doctor. Goes away with its appointment.
type Prescription struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index"`

	Notes string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Doctor      *Doctor      `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Items []PrescriptionItem `gorm:"foreignKey:PrescriptionID"`
}

// prescription_items
type PrescriptionItem struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationID   uuid.UUID `gorm:"type:uuid;not null;index"`

	Dosage       string `gorm:"type:varchar(64)"`
	Frequency    string `gorm:"type:varchar(64)"`
	DurationDays int    `gorm:"not null;default:0"`
	// Units to draw from inventory when the prescription is dispensed.
	Quantity     int    `gorm:"not null;default:1"`
	Instructions string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Prescription *Prescription `gorm:"foreignKey:PrescriptionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Medication   *Medication   `gorm:"foreignKey:MedicationID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
