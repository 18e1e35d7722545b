package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/model"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@clinic.test",
		PasswordHash: "x",
		Role:         model.UserRoleReceptionist,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedPatient(t *testing.T, db *gorm.DB, firstName string) *model.Patient {
	t.Helper()
	p := &model.Patient{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  "Testov",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return p
}

func seedDoctor(t *testing.T, db *gorm.DB, license string) *model.Doctor {
	t.Helper()
	d := &model.Doctor{
		ID:            uuid.New(),
		FirstName:     "Anna",
		LastName:      "Petrova",
		LicenseNumber: license,
	}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return d
}

func seedSpecialty(t *testing.T, db *gorm.DB, name string) *model.Specialty {
	t.Helper()
	s := &model.Specialty{ID: uuid.New(), Name: name}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed specialty: %v", err)
	}
	return s
}

func seedRoom(t *testing.T, db *gorm.DB, name string) *model.Room {
	t.Helper()
	r := &model.Room{ID: uuid.New(), Name: name, Capacity: 1}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return r
}

func seedService(t *testing.T, db *gorm.DB, code string, price float64) *model.Service {
	t.Helper()
	s := &model.Service{
		ID:       uuid.New(),
		Code:     code,
		Name:     "Service " + code,
		Price:    price,
		IsActive: true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return s
}

func seedMedication(t *testing.T, db *gorm.DB, name, strength string) *model.Medication {
	t.Helper()
	m := &model.Medication{
		ID:       uuid.New(),
		Name:     name,
		Strength: strength,
		Unit:     "tablet",
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed medication: %v", err)
	}
	return m
}

func seedAppointment(t *testing.T, db *gorm.DB, patientID, doctorID uuid.UUID, start, end time.Time) *model.Appointment {
	t.Helper()
	a := &model.Appointment{
		ID:             uuid.New(),
		PatientID:      patientID,
		DoctorID:       doctorID,
		ScheduledStart: start,
		ScheduledEnd:   end,
		Status:         model.AppointmentStatusScheduled,
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return a
}

func seedInvoice(t *testing.T, db *gorm.DB, patientID uuid.UUID) *model.Invoice {
	t.Helper()
	inv := &model.Invoice{
		ID:        uuid.New(),
		PatientID: patientID,
		Status:    model.InvoiceStatusPending,
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return inv
}
