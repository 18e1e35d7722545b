package model

import (
	"time"

	"github.com/google/uuid"
)

// specialties — static reference data.
type Specialty struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}
