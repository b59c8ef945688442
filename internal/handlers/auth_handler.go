package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// AuthHandler handles registration, login and token verification endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
	userService services.UserServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService services.AuthServiceInterface, userService services.UserServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    user,
	})
}

// Login handles POST /api/auth/login
// Failed credentials always produce the same 401 body regardless of whether
// the email exists.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	response, err := h.authService.Authenticate(c.Request.Context(), &req)
	if err != nil {
		attachError(c, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Verify handles POST /api/auth/verify
// Reports whether a presented token grants an authenticated session. Always
// responds 200; the verdict is in the body.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req models.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, &models.VerifyTokenResponse{Reason: models.TokenMissing})
		return
	}

	c.JSON(http.StatusOK, h.authService.VerifyToken(c.Request.Context(), req.Token))
}
