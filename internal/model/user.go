package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff role. Stored as a plain varchar, validated at the service layer.
type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleReceptionist UserRole = "receptionist"
	UserRoleDoctor       UserRole = "doctor"
	UserRoleNurse        UserRole = "nurse"
	UserRolePharmacist   UserRole = "pharmacist"
	UserRoleAccountant   UserRole = "accountant"
)

// ValidRole reports whether r is one of the known staff roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleAdmin, UserRoleReceptionist, UserRoleDoctor,
		UserRoleNurse, UserRolePharmacist, UserRoleAccountant:
		return true
	}
	return false
}

// users — staff accounts. Never hard-deleted: other tables reference a
// user through nullable FKs, deactivation flips IsActive instead.
type User struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Username     string   `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string   `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Role         UserRole `gorm:"type:varchar(32);not null;index"`
	FullName     string   `gorm:"type:varchar(255)"`

	IsActive bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
