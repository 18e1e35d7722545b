package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// invoices. TotalAmount is stored, not derived: keeping it in sync with
// the line items is the billing service's job, not the database's.
type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedByID   *uuid.UUID `gorm:"type:uuid;index"`

	TotalAmount float64       `gorm:"type:numeric(10,2);not null;default:0"`
	Status      InvoiceStatus `gorm:"type:varchar(16);not null;default:'pending';index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Patient     *Patient     `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

// invoice_items. A line must point at a service, or a medication, or
// carry a free-text description (the check below). LineTotal is a
// generated column, never written by the application.
type InvoiceItem struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	InvoiceID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID    *uuid.UUID `gorm:"type:uuid;index"`
	MedicationID *uuid.UUID `gorm:"type:uuid;index"`

	Description string `gorm:"type:text;not null;default:'';check:chk_invoice_items_target,service_id IS NOT NULL OR medication_id IS NOT NULL OR description <> ''"`

	Quantity  int     `gorm:"not null;default:1"`
	UnitPrice float64 `gorm:"type:numeric(10,2);not null"`

	LineTotal float64 `gorm:"->;type:numeric(12,2) GENERATED ALWAYS AS (quantity * unit_price) STORED"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Invoice    *Invoice    `gorm:"foreignKey:InvoiceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Service    *Service    `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Medication *Medication `gorm:"foreignKey:MedicationID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
