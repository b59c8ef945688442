package repository

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/cache"
	"github.com/mentorhub/mentorhub-api/internal/database/postgres"
	"github.com/mentorhub/mentorhub-api/internal/models"
)

// TaxonomyRepository serves the skills and interests catalogs, reading
// through the in-memory cache when one is configured
type TaxonomyRepository struct {
	db            *postgres.Client
	taxonomyCache *cache.TaxonomyCache
}

// NewTaxonomyRepository creates a new taxonomy repository. taxonomyCache
// may be nil, in which case every read goes to the database.
func NewTaxonomyRepository(db *postgres.Client, taxonomyCache *cache.TaxonomyCache) TaxonomyRepositoryInterface {
	return &TaxonomyRepository{db: db, taxonomyCache: taxonomyCache}
}

// ListSkills returns the full skills catalog
func (r *TaxonomyRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	if r.taxonomyCache != nil && r.taxonomyCache.IsReady() {
		return r.taxonomyCache.GetSkills(ctx)
	}
	return r.db.GetAllSkills(ctx)
}

// ListInterests returns the full interests catalog
func (r *TaxonomyRepository) ListInterests(ctx context.Context) ([]models.Interest, error) {
	if r.taxonomyCache != nil && r.taxonomyCache.IsReady() {
		return r.taxonomyCache.GetInterests(ctx)
	}
	return r.db.GetAllInterests(ctx)
}

// CreateSkill gets or creates a skill by name and invalidates the cached
// catalog
func (r *TaxonomyRepository) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	skill, err := r.db.CreateSkill(ctx, name)
	if err != nil {
		return nil, err
	}
	if r.taxonomyCache != nil {
		r.taxonomyCache.InvalidateSkills()
	}
	return skill, nil
}

// CreateInterest gets or creates an interest by name and invalidates the
// cached catalog
func (r *TaxonomyRepository) CreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	interest, err := r.db.CreateInterest(ctx, name)
	if err != nil {
		return nil, err
	}
	if r.taxonomyCache != nil {
		r.taxonomyCache.InvalidateInterests()
	}
	return interest, nil
}

// GetSkillByName looks up a skill by its exact name
func (r *TaxonomyRepository) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	return r.db.GetSkillByName(ctx, name)
}

// GetInterestByName looks up an interest by its exact name
func (r *TaxonomyRepository) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	return r.db.GetInterestByName(ctx, name)
}
