package model

import (
	"time"

	"github.com/google/uuid"
)

// doctors. Optionally linked one-to-one to a staff account; deleting the
// account detaches the link (SET NULL), the doctor record stays.
type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`

	LicenseNumber string `gorm:"type:varchar(64);not null;uniqueIndex"`

	Phone string `gorm:"type:varchar(32)"`
	Email string `gorm:"type:varchar(255)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Specialties []Specialty `gorm:"many2many:doctor_specialties;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// doctor_specialties — many-to-many link, composite PK.
type DoctorSpecialty struct {
	DoctorID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	SpecialtyID uuid.UUID `gorm:"type:uuid;primaryKey"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Doctor    *Doctor    `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
