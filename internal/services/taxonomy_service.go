package services

import (
	"context"
	"strings"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// TaxonomyService serves the skills and interests catalogs
type TaxonomyService struct {
	taxonomyRepo repository.TaxonomyRepositoryInterface
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepositoryInterface) *TaxonomyService {
	return &TaxonomyService{taxonomyRepo: taxonomyRepo}
}

// ListSkills returns the full skills catalog
func (s *TaxonomyService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.taxonomyRepo.ListSkills(ctx)
}

// ListInterests returns the full interests catalog
func (s *TaxonomyService) ListInterests(ctx context.Context) ([]models.Interest, error) {
	return s.taxonomyRepo.ListInterests(ctx)
}

// CreateSkill gets or creates a skill by its trimmed name
func (s *TaxonomyService) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("name", "must not be empty")
	}
	return s.taxonomyRepo.CreateSkill(ctx, name)
}

// CreateInterest gets or creates an interest by its trimmed name
func (s *TaxonomyService) CreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("name", "must not be empty")
	}
	return s.taxonomyRepo.CreateInterest(ctx, name)
}

// GetSkillByName looks up a skill by its exact name
func (s *TaxonomyService) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("name", "must not be empty")
	}
	return s.taxonomyRepo.GetSkillByName(ctx, name)
}

// GetInterestByName looks up an interest by its exact name
func (s *TaxonomyService) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.ValidationError("name", "must not be empty")
	}
	return s.taxonomyRepo.GetInterestByName(ctx, name)
}
