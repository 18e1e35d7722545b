// Package testdb opens an in-memory sqlite database carrying the same
// constraint set as the postgres schema (foreign-key actions, unique
// indexes, checks, the generated invoice line total), so tests exercise
// real constraint enforcement instead of mocks.
package testdb

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		full_name TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE patients (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL CHECK (first_name <> ''),
		last_name TEXT,
		date_of_birth DATE,
		gender TEXT,
		national_id TEXT UNIQUE,
		phone TEXT,
		email TEXT,
		address TEXT,
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE specialties (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE doctors (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE REFERENCES users (id) ON DELETE SET NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		license_number TEXT NOT NULL UNIQUE,
		phone TEXT,
		email TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE doctor_specialties (
		doctor_id TEXT NOT NULL REFERENCES doctors (id) ON DELETE CASCADE,
		specialty_id TEXT NOT NULL REFERENCES specialties (id) ON DELETE CASCADE,
		created_at DATETIME,
		PRIMARY KEY (doctor_id, specialty_id)
	);`,
	`CREATE TABLE patient_doctors (
		patient_id TEXT NOT NULL REFERENCES patients (id) ON DELETE CASCADE,
		doctor_id TEXT NOT NULL REFERENCES doctors (id) ON DELETE CASCADE,
		is_primary BOOLEAN NOT NULL DEFAULT 0,
		assigned_at DATE NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (patient_id, doctor_id)
	);`,
	`CREATE TABLE rooms (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		capacity INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME
	);`,
	`CREATE TABLE services (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		default_duration_min INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE appointments (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients (id) ON DELETE RESTRICT,
		doctor_id TEXT NOT NULL REFERENCES doctors (id) ON DELETE RESTRICT,
		room_id TEXT REFERENCES rooms (id) ON DELETE SET NULL,
		created_by_id TEXT REFERENCES users (id) ON DELETE SET NULL,
		scheduled_start DATETIME NOT NULL,
		scheduled_end DATETIME NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled',
		reason TEXT,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		CONSTRAINT chk_appointments_time CHECK (scheduled_end > scheduled_start)
	);`,
	`CREATE TABLE appointment_services (
		appointment_id TEXT NOT NULL REFERENCES appointments (id) ON DELETE CASCADE,
		service_id TEXT NOT NULL REFERENCES services (id) ON DELETE RESTRICT,
		quantity INTEGER NOT NULL DEFAULT 1,
		unit_price NUMERIC NOT NULL,
		created_at DATETIME,
		PRIMARY KEY (appointment_id, service_id)
	);`,
	`CREATE TABLE medications (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		strength TEXT NOT NULL,
		manufacturer TEXT,
		unit TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (name, strength)
	);`,
	`CREATE TABLE inventories (
		id TEXT PRIMARY KEY,
		medication_id TEXT NOT NULL UNIQUE REFERENCES medications (id) ON DELETE CASCADE,
		quantity_on_hand INTEGER NOT NULL DEFAULT 0,
		reorder_level INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE prescriptions (
		id TEXT PRIMARY KEY,
		appointment_id TEXT NOT NULL UNIQUE REFERENCES appointments (id) ON DELETE CASCADE,
		doctor_id TEXT NOT NULL REFERENCES doctors (id) ON DELETE RESTRICT,
		notes TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE prescription_items (
		id TEXT PRIMARY KEY,
		prescription_id TEXT NOT NULL REFERENCES prescriptions (id) ON DELETE CASCADE,
		medication_id TEXT NOT NULL REFERENCES medications (id) ON DELETE RESTRICT,
		dosage TEXT,
		frequency TEXT,
		duration_days INTEGER NOT NULL DEFAULT 0,
		quantity INTEGER NOT NULL DEFAULT 1,
		instructions TEXT,
		created_at DATETIME
	);`,
	`CREATE TABLE invoices (
		id TEXT PRIMARY KEY,
		patient_id TEXT NOT NULL REFERENCES patients (id) ON DELETE RESTRICT,
		appointment_id TEXT REFERENCES appointments (id) ON DELETE SET NULL,
		created_by_id TEXT REFERENCES users (id) ON DELETE SET NULL,
		total_amount NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	);`,
	`CREATE TABLE invoice_items (
		id TEXT PRIMARY KEY,
		invoice_id TEXT NOT NULL REFERENCES invoices (id) ON DELETE CASCADE,
		service_id TEXT REFERENCES services (id) ON DELETE SET NULL,
		medication_id TEXT REFERENCES medications (id) ON DELETE SET NULL,
		description TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 1,
		unit_price NUMERIC NOT NULL,
		line_total NUMERIC GENERATED ALWAYS AS (quantity * unit_price) VIRTUAL,
		created_at DATETIME,
		CONSTRAINT chk_invoice_items_target CHECK (service_id IS NOT NULL OR medication_id IS NOT NULL OR description <> '')
	);`,
}

// Open returns an in-memory database with the clinic schema and foreign
// keys enabled.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}
