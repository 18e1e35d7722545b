package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/clinova/clinic-core/internal/model"
)

type createPatientInput struct {
	FirstName             string  `json:"first_name" binding:"required"`
	LastName              string  `json:"last_name"`
	DateOfBirth           string  `json:"date_of_birth"` // YYYY-MM-DD
	Gender                string  `json:"gender"`
	NationalID            *string `json:"national_id"`
	Phone                 string  `json:"phone"`
	Email                 string  `json:"email"`
	Address               string  `json:"address"`
	EmergencyContactName  string  `json:"emergency_contact_name"`
	EmergencyContactPhone string  `json:"emergency_contact_phone"`
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var in createPatientInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := model.Patient{
		ID:                    uuid.New(),
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Gender:                in.Gender,
		NationalID:            in.NationalID,
		Phone:                 in.Phone,
		Email:                 in.Email,
		Address:               in.Address,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
	}
	if in.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", in.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_of_birth"})
			return
		}
		d := datatypes.Date(dob)
		p.DateOfBirth = &d
	}

	if err := h.Patients.Create(c.Request.Context(), &p); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Patients.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c *gin.Context) {
	limit, offset := parseLimitOffset(c)

	var (
		patients []model.Patient
		total    int64
		err      error
	)
	if q := c.Query("q"); q != "" {
		patients, total, err = h.Patients.Search(c.Request.Context(), q, limit, offset)
	} else {
		patients, total, err = h.Patients.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "total": total})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Identity and bookkeeping columns are not writable through PATCH.
	for _, k := range []string{"id", "created_at", "updated_at"} {
		delete(updates, k)
	}
	if err := h.Patients.Update(c.Request.Context(), id, updates); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignDoctorInput struct {
	DoctorID  string `json:"doctor_id" binding:"required,uuid"`
	IsPrimary bool   `json:"is_primary"`
}

func (h *Handler) AssignPatientDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in assignDoctorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doctorID := uuid.MustParse(in.DoctorID)

	ctx := c.Request.Context()
	if err := h.Patients.AssignDoctor(ctx, id, doctorID, in.IsPrimary); err != nil {
		h.writeError(c, err)
		return
	}
	if in.IsPrimary {
		if err := h.Patients.SetPrimaryDoctor(ctx, id, doctorID); err != nil {
			h.writeError(c, err)
			return
		}
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) RemovePatientDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	doctorID, err := uuid.Parse(c.Param("doctorID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doctor id"})
		return
	}
	if err := h.Patients.RemoveDoctor(c.Request.Context(), id, doctorID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListPatientDoctors(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	doctors, err := h.Patients.ListDoctors(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (h *Handler) ListPatientAppointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(c)
	appts, total, err := h.Appointments.ListByPatient(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "total": total})
}

func (h *Handler) ListPatientInvoices(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	limit, offset := parseLimitOffset(c)
	invoices, total, err := h.Invoices.ListByPatient(c.Request.Context(), id, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "total": total})
}
