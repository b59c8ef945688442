package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/middleware"
	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// SearchHandler handles user discovery endpoints
type SearchHandler struct {
	searchService services.SearchServiceInterface
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService services.SearchServiceInterface) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchUsers handles GET /api/users
// Query parameters: query, skills, interests (comma-separated IDs), role,
// sortBy, sortOrder, page, limit. All optional; filters compose with AND.
func (h *SearchHandler) SearchUsers(c *gin.Context) {
	params := models.SearchParams{
		Query:     strings.TrimSpace(c.Query("query")),
		SortBy:    c.Query("sortBy"),
		SortOrder: models.SortOrder(c.Query("sortOrder")),
	}

	var ok bool
	if params.SkillIDs, ok = parseIDList(c, "skills"); !ok {
		return
	}
	if params.InterestIDs, ok = parseIDList(c, "interests"); !ok {
		return
	}

	if roleStr := c.Query("role"); roleStr != "" {
		role := models.UserRole(strings.ToUpper(roleStr))
		if !role.IsValid() {
			respondError(c, http.StatusBadRequest, "Invalid role. Must be MENTOR or MENTEE", nil)
			return
		}
		params.Role = &role
	}

	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.searchService.SearchUsers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err, "Failed to search users")
		return
	}

	c.JSON(http.StatusOK, result)
}

// SharedSkills handles GET /api/users/shared-skills
// Returns users who share at least one skill with the authenticated user
func (h *SearchHandler) SharedSkills(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	users, err := h.searchService.UsersSharingSkills(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SharedInterests handles GET /api/users/shared-interests
// Returns users who share at least one interest with the authenticated user
func (h *SearchHandler) SharedInterests(c *gin.Context) {
	session, err := middleware.GetUserSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	users, err := h.searchService.UsersSharingInterests(c.Request.Context(), session.UserID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// parseIDList parses a comma-separated list of numeric IDs from a query
// parameter. An empty parameter yields a nil slice.
func parseIDList(c *gin.Context, param string) ([]int64, bool) {
	raw := c.Query(param)
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id < 1 {
			respondError(c, http.StatusBadRequest, "Invalid "+param+" parameter", err)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
