package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/service"
)

type bookAppointmentInput struct {
	PatientID   string         `json:"patient_id" binding:"required,uuid"`
	DoctorID    string         `json:"doctor_id" binding:"required,uuid"`
	RoomID      *string        `json:"room_id"`
	CreatedBy   *string        `json:"created_by"`
	Start       time.Time      `json:"scheduled_start" binding:"required"`
	End         time.Time      `json:"scheduled_end" binding:"required"`
	Reason      string         `json:"reason"`
	ServiceIDs  []string       `json:"service_ids" binding:"required,min=1"`
	Quantities  map[string]int `json:"quantities"`
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var in bookAppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := service.BookingRequest{
		PatientID: uuid.MustParse(in.PatientID),
		DoctorID:  uuid.MustParse(in.DoctorID),
		Start:     in.Start,
		End:       in.End,
		Reason:    in.Reason,
	}
	if in.RoomID != nil {
		roomID, err := uuid.Parse(*in.RoomID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		req.RoomID = &roomID
	}
	if in.CreatedBy != nil {
		createdBy, err := uuid.Parse(*in.CreatedBy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_by"})
			return
		}
		req.CreatedByID = &createdBy
	}
	for _, sid := range in.ServiceIDs {
		id, err := uuid.Parse(sid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}
		req.ServiceIDs = append(req.ServiceIDs, id)
	}
	if len(in.Quantities) > 0 {
		req.Quantities = make(map[uuid.UUID]int, len(in.Quantities))
		for sid, qty := range in.Quantities {
			id, err := uuid.Parse(sid)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id in quantities"})
				return
			}
			req.Quantities[id] = qty
		}
	}

	appt, err := h.Scheduling.Book(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	appt, err := h.Appointments.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

type replaceServicesInput struct {
	ServiceIDs []string       `json:"service_ids" binding:"required,min=1"`
	Quantities map[string]int `json:"quantities"`
}

// ReplaceAppointmentServices swaps the rendered-service lines for the
// given set, re-snapshotting catalog prices.
func (h *Handler) ReplaceAppointmentServices(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in replaceServicesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	serviceIDs := make([]uuid.UUID, 0, len(in.ServiceIDs))
	for _, sid := range in.ServiceIDs {
		sID, err := uuid.Parse(sid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
			return
		}
		serviceIDs = append(serviceIDs, sID)
	}
	var quantities map[uuid.UUID]int
	if len(in.Quantities) > 0 {
		quantities = make(map[uuid.UUID]int, len(in.Quantities))
		for sid, qty := range in.Quantities {
			sID, err := uuid.Parse(sid)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id in quantities"})
				return
			}
			quantities[sID] = qty
		}
	}

	if err := h.Scheduling.ReplaceServices(c.Request.Context(), id, serviceIDs, quantities); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListAppointmentServices(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	lines, err := h.Appointments.ListServices(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": lines})
}

type updateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in updateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Scheduling.UpdateStatus(c.Request.Context(), id, model.AppointmentStatus(in.Status)); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Scheduling.Cancel(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
