package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/service"
)

type prescriptionItemInput struct {
	MedicationID string `json:"medication_id" binding:"required,uuid"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	DurationDays int    `json:"duration_days"`
	Instructions string `json:"instructions"`
	Quantity     int    `json:"quantity"`
}

type issuePrescriptionInput struct {
	DoctorID string                  `json:"doctor_id" binding:"required,uuid"`
	Notes    string                  `json:"notes"`
	Items    []prescriptionItemInput `json:"items" binding:"required,min=1"`
}

// IssuePrescription creates the appointment's one prescription; a second
// call for the same appointment gets a 409.
func (h *Handler) IssuePrescription(c *gin.Context) {
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}
	var in issuePrescriptionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]service.PrescriptionItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, service.PrescriptionItemInput{
			MedicationID: uuid.MustParse(it.MedicationID),
			Dosage:       it.Dosage,
			Frequency:    it.Frequency,
			DurationDays: it.DurationDays,
			Instructions: it.Instructions,
			Quantity:     it.Quantity,
		})
	}

	p, err := h.Pharmacy.Issue(c.Request.Context(), appointmentID, uuid.MustParse(in.DoctorID), in.Notes, items)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetAppointmentPrescription(c *gin.Context) {
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Prescriptions.GetByAppointment(c.Request.Context(), appointmentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.Prescriptions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type dispenseInput struct {
	Quantities map[string]int `json:"quantities"`
}

func (h *Handler) DispensePrescription(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in dispenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var quantities map[uuid.UUID]int
	if len(in.Quantities) > 0 {
		quantities = make(map[uuid.UUID]int, len(in.Quantities))
		for mid, qty := range in.Quantities {
			medicationID, err := uuid.Parse(mid)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medication id"})
				return
			}
			quantities[medicationID] = qty
		}
	}

	if err := h.Pharmacy.Dispense(c.Request.Context(), id, quantities); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
