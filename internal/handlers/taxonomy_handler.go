package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

// TaxonomyHandler handles the skills and interests catalog endpoints
type TaxonomyHandler struct {
	taxonomyService services.TaxonomyServiceInterface
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService services.TaxonomyServiceInterface) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService}
}

// ListSkills handles GET /api/skills
func (h *TaxonomyHandler) ListSkills(c *gin.Context) {
	skills, err := h.taxonomyService.ListSkills(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch skills")
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// CreateSkill handles POST /api/skills
// Creating a skill that already exists returns the existing row.
func (h *TaxonomyHandler) CreateSkill(c *gin.Context) {
	var req models.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	skill, err := h.taxonomyService.CreateSkill(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to create skill")
		return
	}

	c.JSON(http.StatusCreated, skill)
}

// GetSkillByName handles GET /api/skills/:name
func (h *TaxonomyHandler) GetSkillByName(c *gin.Context) {
	skill, err := h.taxonomyService.GetSkillByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch skill")
		return
	}

	c.JSON(http.StatusOK, skill)
}

// ListInterests handles GET /api/interests
func (h *TaxonomyHandler) ListInterests(c *gin.Context) {
	interests, err := h.taxonomyService.ListInterests(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch interests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": interests})
}

// CreateInterest handles POST /api/interests
func (h *TaxonomyHandler) CreateInterest(c *gin.Context) {
	var req models.CreateNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	interest, err := h.taxonomyService.CreateInterest(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, err, "Failed to create interest")
		return
	}

	c.JSON(http.StatusCreated, interest)
}

// GetInterestByName handles GET /api/interests/:name
func (h *TaxonomyHandler) GetInterestByName(c *gin.Context) {
	interest, err := h.taxonomyService.GetInterestByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch interest")
		return
	}

	c.JSON(http.StatusOK, interest)
}
