package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinova/clinic-core/internal/model"
)

type createUserInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var in createUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Staff.Provision(c.Request.Context(), in.Username, in.Email, in.Password, in.FullName, model.UserRole(in.Role))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userView(u))
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userView(u))
}

func (h *Handler) ListUsers(c *gin.Context) {
	limit, offset := parseLimitOffset(c)
	users, total, err := h.Users.List(c.Request.Context(), model.UserRole(c.Query("role")), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": views, "total": total})
}

type updateUserInput struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in updateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if in.Role != "" {
		if err := h.Staff.ChangeRole(ctx, id, model.UserRole(in.Role)); err != nil {
			h.writeError(c, err)
			return
		}
	}
	if err := h.Staff.UpdateProfile(ctx, id, in.Email, in.FullName); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type changePasswordInput struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) ChangeUserPassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in changePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Staff.ChangePassword(c.Request.Context(), id, in.Password); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Staff.Deactivate(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ReactivateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Staff.Reactivate(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// userView never exposes the credential hash.
func userView(u *model.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"full_name": u.FullName,
		"role":      u.Role,
		"is_active": u.IsActive,
	}
}
