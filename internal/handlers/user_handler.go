package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// UserHandler handles user read, update and delete endpoints
type UserHandler struct {
	userService services.UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// parseUserID extracts and validates the :id route parameter
func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "Invalid user ID", err)
		return 0, false
	}
	return id, true
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetProfile handles GET /api/users/:id/profile
// Returns the full profile view: user, taxonomy and current connections
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/users/:id
// Users may only update their own profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), session.UserID, id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// DeleteUser handles DELETE /api/users/:id
// Users may only delete their own account.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), session.UserID, id); err != nil {
		respondServiceError(c, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
