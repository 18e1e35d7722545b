package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/service"
)

type invoiceLineInput struct {
	ServiceID    *string `json:"service_id"`
	MedicationID *string `json:"medication_id"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

type createInvoiceInput struct {
	PatientID     string             `json:"patient_id" binding:"required,uuid"`
	AppointmentID *string            `json:"appointment_id"`
	CreatedBy     *string            `json:"created_by"`
	Lines         []invoiceLineInput `json:"lines" binding:"required,min=1"`
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	var in createInvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var appointmentID, createdBy *uuid.UUID
	if in.AppointmentID != nil {
		id, err := uuid.Parse(*in.AppointmentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment_id"})
			return
		}
		appointmentID = &id
	}
	if in.CreatedBy != nil {
		id, err := uuid.Parse(*in.CreatedBy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_by"})
			return
		}
		createdBy = &id
	}

	lines := make([]service.InvoiceLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := service.InvoiceLine{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		}
		if l.ServiceID != nil {
			id, err := uuid.Parse(*l.ServiceID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service_id"})
				return
			}
			line.ServiceID = &id
		}
		if l.MedicationID != nil {
			id, err := uuid.Parse(*l.MedicationID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid medication_id"})
				return
			}
			line.MedicationID = &id
		}
		lines = append(lines, line)
	}

	inv, err := h.Billing.CreateInvoice(c.Request.Context(), uuid.MustParse(in.PatientID), appointmentID, createdBy, lines)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// InvoiceAppointment bills an appointment from its service lines.
func (h *Handler) InvoiceAppointment(c *gin.Context) {
	appointmentID, ok := pathID(c)
	if !ok {
		return
	}

	var createdBy *uuid.UUID
	if v := c.Query("created_by"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_by"})
			return
		}
		createdBy = &id
	}

	inv, err := h.Billing.InvoiceForAppointment(c.Request.Context(), appointmentID, createdBy)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.Invoices.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) MarkInvoicePaid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Billing.MarkPaid(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) VoidInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Billing.Void(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RecomputeInvoiceTotal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	total, err := h.Billing.RecomputeTotal(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_amount": total})
}
