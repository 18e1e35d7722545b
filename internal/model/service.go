package model

import (
	"time"

	"github.com/google/uuid"
)

// services — billable catalog entries (consultations, procedures, tests).
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Code string `gorm:"type:varchar(32);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(255);not null"`

	Price float64 `gorm:"type:numeric(10,2);not null"`

	// In minutes, nil when the service has no fixed duration.
	DefaultDurationMin *int64 `gorm:"type:bigint"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
