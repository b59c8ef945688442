package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// MentorshipHandler handles request and connection lifecycle endpoints
type MentorshipHandler struct {
	mentorshipService services.MentorshipServiceInterface
}

// NewMentorshipHandler creates a new MentorshipHandler
func NewMentorshipHandler(mentorshipService services.MentorshipServiceInterface) *MentorshipHandler {
	return &MentorshipHandler{mentorshipService: mentorshipService}
}

// SendRequest handles POST /api/mentorship/requests
func (h *MentorshipHandler) SendRequest(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var payload models.SendRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.mentorshipService.SendRequest(c.Request.Context(), session.UserID, &payload)
	if err != nil {
		respondServiceError(c, err, "Failed to send mentorship request")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// RespondToRequest handles POST /api/mentorship/requests/:id/respond
// Only the receiver of a pending request may accept or decline it.
func (h *MentorshipHandler) RespondToRequest(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || requestID < 1 {
		respondError(c, http.StatusBadRequest, "Invalid request ID", err)
		return
	}

	var payload models.RespondRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body. Status must be ACCEPTED or DECLINED", err)
		return
	}

	result, err := h.mentorshipService.RespondToRequest(c.Request.Context(), session.UserID, requestID, payload.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to respond to mentorship request")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPendingRequests handles GET /api/mentorship/requests/pending
func (h *MentorshipHandler) ListPendingRequests(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requests, err := h.mentorshipService.ListPendingRequests(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pending requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}

// ListConnections handles GET /api/mentorship/connections
func (h *MentorshipHandler) ListConnections(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	connections, err := h.mentorshipService.ListActiveConnections(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch connections")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"connections": connections,
	})
}

// CancelConnection handles POST /api/mentorship/connections/cancel
// The acting user's role decides which side of the connection they hold;
// the payload names the counterpart.
func (h *MentorshipHandler) CancelConnection(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var payload models.CancelConnectionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var result *models.CancelResult
	if session.Role == models.RoleMentor {
		result, err = h.mentorshipService.CancelConnectionByMentor(c.Request.Context(), session.UserID, payload.CounterpartID)
	} else {
		result, err = h.mentorshipService.CancelConnectionByMentee(c.Request.Context(), session.UserID, payload.CounterpartID)
	}
	if err != nil {
		respondServiceError(c, err, "Failed to cancel mentorship connection")
		return
	}

	c.JSON(http.StatusOK, result)
}
