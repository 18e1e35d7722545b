package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/model"
)

// Billable services and medications. Reads go through the redis-backed
// catalog cache when one is wired; writes invalidate it.

type createServiceInput struct {
	Code               string  `json:"code" binding:"required"`
	Name               string  `json:"name" binding:"required"`
	Price              float64 `json:"price" binding:"required"`
	DefaultDurationMin *int64  `json:"default_duration_min"`
}

func (h *Handler) CreateService(c *gin.Context) {
	var in createServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := model.Service{
		ID:                 uuid.New(),
		Code:               in.Code,
		Name:               in.Name,
		Price:              in.Price,
		DefaultDurationMin: in.DefaultDurationMin,
		IsActive:           true,
	}
	if err := h.Services.Create(c.Request.Context(), &s); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateCatalog(c)
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s, err := h.Services.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	// The cached path serves the common "active catalog" read.
	if h.Catalog != nil && c.Query("all") == "" {
		services, err := h.Catalog.Services(ctx)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"services": services, "total": len(services)})
		return
	}

	limit, offset := parseLimitOffset(c)
	services, total, err := h.Services.List(ctx, false, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services, "total": total})
}

func (h *Handler) UpdateService(c *gin.Context) {
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
	if err := h.Services.Update(c.Request.Context(), id, updates); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateCatalog(c)
	c.Status(http.StatusNoContent)
}

// DeleteService is rejected with a 409 while appointment lines still
// reference the service.
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Services.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateCatalog(c)
	c.Status(http.StatusNoContent)
}

type createMedicationInput struct {
	Name         string `json:"name" binding:"required"`
	Strength     string `json:"strength" binding:"required"`
	Manufacturer string `json:"manufacturer"`
	Unit         string `json:"unit"`
}

func (h *Handler) CreateMedication(c *gin.Context) {
	var in createMedicationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m := model.Medication{
		ID:           uuid.New(),
		Name:         in.Name,
		Strength:     in.Strength,
		Manufacturer: in.Manufacturer,
		Unit:         in.Unit,
	}
	if err := h.Medications.Create(c.Request.Context(), &m); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateCatalog(c)
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.Medications.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c *gin.Context) {
	ctx := c.Request.Context()

	if h.Catalog != nil && c.Query("limit") == "" && c.Query("offset") == "" {
		medications, err := h.Catalog.Medications(ctx)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"medications": medications, "total": len(medications)})
		return
	}

	limit, offset := parseLimitOffset(c)
	medications, total, err := h.Medications.List(ctx, limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"medications": medications, "total": total})
}

// DeleteMedication cascades the inventory row, nulls invoice-item refs,
// and is rejected while prescription items reference the medication.
func (h *Handler) DeleteMedication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Medications.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	h.invalidateCatalog(c)
	c.Status(http.StatusNoContent)
}

type upsertInventoryInput struct {
	QuantityOnHand int `json:"quantity_on_hand"`
	ReorderLevel   int `json:"reorder_level"`
}

func (h *Handler) UpsertInventory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in upsertInventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv := model.Inventory{
		ID:             uuid.New(),
		MedicationID:   id,
		QuantityOnHand: in.QuantityOnHand,
		ReorderLevel:   in.ReorderLevel,
	}
	if err := h.Inventory.Upsert(c.Request.Context(), &inv); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) GetInventory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.Inventory.GetByMedication(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type restockInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *Handler) Restock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in restockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv, err := h.Pharmacy.Restock(c.Request.Context(), id, in.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListBelowReorder(c *gin.Context) {
	rows, err := h.Inventory.ListBelowReorder(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": rows})
}

func (h *Handler) invalidateCatalog(c *gin.Context) {
	if h.Catalog != nil {
		h.Catalog.Invalidate(c.Request.Context())
	}
}
