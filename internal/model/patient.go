package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// patients
type Patient struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	FirstName string `gorm:"type:varchar(100);not null;check:chk_patients_first_name,first_name <> ''"`
	LastName  string `gorm:"type:varchar(100)"`

	DateOfBirth *datatypes.Date `gorm:"type:date"`
	Gender      string          `gorm:"type:varchar(16)"`

	// Optional government identifier; unique when present.
	NationalID *string `gorm:"type:varchar(32);uniqueIndex"`

	Phone   string `gorm:"type:varchar(32)"`
	Email   string `gorm:"type:varchar(255)"`
	Address string `gorm:"type:text"`

	EmergencyContactName  string `gorm:"type:varchar(255)"`
	EmergencyContactPhone string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Doctors []Doctor `gorm:"many2many:patient_doctors;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// patient_doctors — which doctors follow a patient, with at most one
// marked primary by the service layer (the schema does not enforce it).
type PatientDoctor struct {
	PatientID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DoctorID  uuid.UUID `gorm:"type:uuid;primaryKey"`

	IsPrimary  bool           `gorm:"not null;default:false"`
	AssignedAt datatypes.Date `gorm:"type:date;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
