package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinova/clinic-core/internal/model"
)

// Specialties and rooms: small static reference sets.

type createSpecialtyInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) CreateSpecialty(c *gin.Context) {
	var in createSpecialtyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := model.Specialty{ID: uuid.New(), Name: in.Name, Description: in.Description}
	if err := h.Specialties.Create(c.Request.Context(), &s); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	specialties, err := h.Specialties.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialties": specialties})
}

func (h *Handler) DeleteSpecialty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Specialties.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type createRoomInput struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity"`
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var in createRoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	capacity := in.Capacity
	if capacity <= 0 {
		capacity = 1
	}
	r := model.Room{ID: uuid.New(), Name: in.Name, Capacity: capacity}
	if err := h.Rooms.Create(c.Request.Context(), &r); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Rooms.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// DeleteRoom succeeds even with appointments in the room; their room_id
// goes null.
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Rooms.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
