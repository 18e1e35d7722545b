package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/handler"
	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/service"
	"github.com/clinova/clinic-core/internal/testdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	log := zap.NewNop()

	apptRepo := repository.NewGormAppointmentRepository(db)
	serviceRepo := repository.NewGormServiceRepository(db)
	invoiceRepo := repository.NewGormInvoiceRepository(db)
	prescriptionRepo := repository.NewGormPrescriptionRepository(db)
	inventoryRepo := repository.NewGormInventoryRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	h := &handler.Handler{
		Users:         userRepo,
		Patients:      repository.NewGormPatientRepository(db),
		Doctors:       repository.NewGormDoctorRepository(db),
		Specialties:   repository.NewGormSpecialtyRepository(db),
		Rooms:         repository.NewGormRoomRepository(db),
		Services:      serviceRepo,
		Medications:   repository.NewGormMedicationRepository(db),
		Inventory:     inventoryRepo,
		Appointments:  apptRepo,
		Prescriptions: prescriptionRepo,
		Invoices:      invoiceRepo,

		Scheduling: service.NewSchedulingService(db, apptRepo, serviceRepo, log),
		Billing:    service.NewBillingService(db, invoiceRepo, apptRepo, log),
		Pharmacy:   service.NewPharmacyService(db, prescriptionRepo, inventoryRepo, log),
		Staff:      service.NewStaffService(userRepo, log),

		Log: log,
	}
	return h.Router(), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPatientEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"first_name":  "Ivan",
		"last_name":   "Petrov",
		"national_id": "AB123456",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Unknown id and malformed id are different failures.
	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Reused national id is a unique-constraint conflict.
	w = doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{
		"first_name":  "Petr",
		"national_id": "AB123456",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// Missing first name never reaches the database.
	w = doJSON(t, r, http.MethodPost, "/api/v1/patients", gin.H{"last_name": "Petrov"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingEndpoint(t *testing.T) {
	r, db := newTestRouter(t)

	p := &model.Patient{ID: uuid.New(), FirstName: "Ivan"}
	require.NoError(t, db.Create(p).Error)
	d := &model.Doctor{ID: uuid.New(), FirstName: "Anna", LastName: "Petrova", LicenseNumber: "LIC-001"}
	require.NoError(t, db.Create(d).Error)
	svc := &model.Service{ID: uuid.New(), Code: "CONS", Name: "Consultation", Price: 75, IsActive: true}
	require.NoError(t, db.Create(svc).Error)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	book := gin.H{
		"patient_id":      p.ID.String(),
		"doctor_id":       d.ID.String(),
		"scheduled_start": start.Format(time.RFC3339),
		"scheduled_end":   start.Add(time.Hour).Format(time.RFC3339),
		"service_ids":     []string{svc.ID.String()},
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/appointments", book)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same doctor, same slot: conflict.
	w = doJSON(t, r, http.MethodPost, "/api/v1/appointments", book)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// End before start: unprocessable.
	bad := gin.H{
		"patient_id":      p.ID.String(),
		"doctor_id":       d.ID.String(),
		"scheduled_start": start.Add(2 * time.Hour).Format(time.RFC3339),
		"scheduled_end":   start.Format(time.RFC3339),
		"service_ids":     []string{svc.ID.String()},
	}
	w = doJSON(t, r, http.MethodPost, "/api/v1/appointments", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestDeleteDoctorConflict(t *testing.T) {
	r, db := newTestRouter(t)

	p := &model.Patient{ID: uuid.New(), FirstName: "Ivan"}
	require.NoError(t, db.Create(p).Error)
	d := &model.Doctor{ID: uuid.New(), FirstName: "Anna", LastName: "Petrova", LicenseNumber: "LIC-001"}
	require.NoError(t, db.Create(d).Error)

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	appt := &model.Appointment{
		ID:             uuid.New(),
		PatientID:      p.ID,
		DoctorID:       d.ID,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(time.Hour),
		Status:         model.AppointmentStatusScheduled,
	}
	require.NoError(t, db.Create(appt).Error)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/doctors/"+d.ID.String(), nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// With the appointment gone the delete goes through.
	require.NoError(t, db.Delete(&model.Appointment{}, "id = ?", appt.ID).Error)
	w = doJSON(t, r, http.MethodDelete, "/api/v1/doctors/"+d.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

func TestUserEndpointsHidePasswordHash(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/users", gin.H{
		"username": "frontdesk",
		"email":    "frontdesk@clinic.test",
		"password": "s3cret",
		"role":     "receptionist",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotContains(t, w.Body.String(), "s3cret")
	require.NotContains(t, w.Body.String(), "password_hash")

	w = doJSON(t, r, http.MethodPost, "/api/v1/users", gin.H{
		"username": "janitor1",
		"email":    "janitor1@clinic.test",
		"password": "pw",
		"role":     "janitor",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestInvoiceEndpoints(t *testing.T) {
	r, db := newTestRouter(t)

	p := &model.Patient{ID: uuid.New(), FirstName: "Ivan"}
	require.NoError(t, db.Create(p).Error)

	w := doJSON(t, r, http.MethodPost, "/api/v1/invoices", gin.H{
		"patient_id": p.ID.String(),
		"lines": []gin.H{
			{"description": "consultation", "quantity": 1, "unit_price": 50.0},
			{"description": "supplies", "quantity": 2, "unit_price": 10.0},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var inv model.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	require.Equal(t, 70.0, inv.TotalAmount)

	payPath := fmt.Sprintf("/api/v1/invoices/%s/pay", inv.ID)
	w = doJSON(t, r, http.MethodPost, payPath, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// Voiding a paid invoice is a conflict.
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/invoices/%s/void", inv.ID), nil)
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// A line with no service, medication or description is rejected
	// before it reaches the database.
	w = doJSON(t, r, http.MethodPost, "/api/v1/invoices", gin.H{
		"patient_id": p.ID.String(),
		"lines":      []gin.H{{"quantity": 1, "unit_price": 5.0}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}
