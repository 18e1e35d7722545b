package model

import (
	"time"

	"github.com/google/uuid"
)

// rooms — static reference data.
type Room struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name     string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Capacity int    `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}
