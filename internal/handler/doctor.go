package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/model"
)

type createDoctorInput struct {
	UserID        *string `json:"user_id"`
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	LicenseNumber string  `json:"license_number" binding:"required"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var in createDoctorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := model.Doctor{
		ID:            uuid.New(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		LicenseNumber: in.LicenseNumber,
		Phone:         in.Phone,
		Email:         in.Email,
	}
	if in.UserID != nil {
		uid, err := uuid.Parse(*in.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		d.UserID = &uid
	}

	if err := h.Doctors.Create(c.Request.Context(), &d); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.Doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	ctx := c.Request.Context()
	if sid := c.Query("specialty_id"); sid != "" {
		specialtyID, err := uuid.Parse(sid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialty_id"})
			return
		}
		doctors, err := h.Doctors.ListBySpecialty(ctx, specialtyID)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctors": doctors, "total": len(doctors)})
		return
	}

	limit, offset := parseLimitOffset(c)
	doctors, total, err := h.Doctors.List(ctx, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": doctors, "total": total})
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, k := range []string{"id", "created_at", "updated_at"} {
		delete(updates, k)
	}
	if err := h.Doctors.Update(c.Request.Context(), id, updates); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteDoctor is rejected with a 409 while any appointment still
// references the doctor.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Doctors.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addSpecialtyInput struct {
	SpecialtyID string `json:"specialty_id" binding:"required,uuid"`
}

func (h *Handler) AddDoctorSpecialty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in addSpecialtyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Doctors.AddSpecialty(c.Request.Context(), id, uuid.MustParse(in.SpecialtyID)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *Handler) RemoveDoctorSpecialty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	specialtyID, err := uuid.Parse(c.Param("specialtyID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid specialty id"})
		return
	}
	if err := h.Doctors.RemoveSpecialty(c.Request.Context(), id, specialtyID); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListDoctorSpecialties(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	specialties, err := h.Doctors.ListSpecialties(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialties": specialties})
}

func (h *Handler) ListDoctorAppointments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return
		}
		to = t
	}

	limit, offset := parseLimitOffset(c)
	appts, total, err := h.Appointments.ListByDoctorRange(c.Request.Context(), id, from, to, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "total": total})
}
