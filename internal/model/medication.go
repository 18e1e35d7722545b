package model

import (
	"time"

	"github.com/google/uuid"
)

// medications — pharmacy reference data. The same name can exist in
// several strengths, so uniqueness is on the (name, strength) pair.
type Medication struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name     string `gorm:"type:varchar(255);not null;uniqueIndex:idx_medications_name_strength"`
	Strength string `gorm:"type:varchar(64);not null;uniqueIndex:idx_medications_name_strength"`

	Manufacturer string `gorm:"type:varchar(255)"`
	Unit         string `gorm:"type:varchar(32)"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// inventories — exactly one stock row per medication; removed together
// with it.
type Inventory struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	MedicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	QuantityOnHand int `gorm:"not null;default:0"`
	ReorderLevel   int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Medication *Medication `gorm:"foreignKey:MedicationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
