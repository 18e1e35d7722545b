package model

import "gorm.io/gorm"

// AutoMigrate migrates every clinic entity, parents before children.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Specialty{},
		&Doctor{},
		&DoctorSpecialty{},
		&PatientDoctor{},
		&Room{},
		&Service{},
		&Appointment{},
		&AppointmentService{},
		&Medication{},
		&Inventory{},
		&Prescription{},
		&PrescriptionItem{},
		&Invoice{},
		&InvoiceItem{},
	)
}
