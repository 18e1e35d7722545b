package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/catalog"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/service"
)

// Handler bundles the repositories and services behind the HTTP API.
type Handler struct {
	Users         repository.UserRepository
	Patients      repository.PatientRepository
	Doctors       repository.DoctorRepository
	Specialties   repository.SpecialtyRepository
	Rooms         repository.RoomRepository
	Services      repository.ServiceRepository
	Medications   repository.MedicationRepository
	Inventory     repository.InventoryRepository
	Appointments  repository.AppointmentRepository
	Prescriptions repository.PrescriptionRepository
	Invoices      repository.InvoiceRepository

	Scheduling *service.SchedulingService
	Billing    *service.BillingService
	Pharmacy   *service.PharmacyService
	Staff      *service.StaffService

	Catalog *catalog.Cache

	Log *zap.Logger
}

// writeError maps the three constraint-violation kinds (unique, foreign
// key, check) plus not-found onto distinct HTTP statuses; everything
// else is a 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "unique constraint violated"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		c.JSON(http.StatusConflict, gin.H{"error": "foreign key constraint violated"})
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "check constraint violated"})
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrNoServices),
		errors.Is(err, service.ErrEmptyInvoice),
		errors.Is(err, service.ErrUntaggedLine),
		errors.Is(err, service.ErrNoPrescriptionItems),
		errors.Is(err, service.ErrUnknownStatus),
		errors.Is(err, service.ErrUnknownRole),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrUnknownServiceLine):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDoctorUnavailable),
		errors.Is(err, service.ErrRoomUnavailable),
		errors.Is(err, service.ErrAlreadyPrescribed),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrInvoiceNotVoid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.Log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the :id URL segment; replies 400 and returns false on
// a malformed value.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func parseLimitOffset(c *gin.Context) (int, int) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	return limit, offset
}

func intQuery(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
