package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

const (
	skillsCacheKey    = "skills"
	interestsCacheKey = "interests"
)

// taxonomyLister is the slice of the database client the cache needs
type taxonomyLister interface {
	GetAllSkills(ctx context.Context) ([]models.Skill, error)
	GetAllInterests(ctx context.Context) ([]models.Interest, error)
}

// TaxonomyCache manages the in-memory cache for the skills and interests
// catalogs. Both change rarely and are read on every search and profile
// render, so they are kept hot with a long TTL and invalidated on writes.
type TaxonomyCache struct {
	cache *gocache.Cache
	db    taxonomyLister
	ttl   time.Duration
	mu    sync.RWMutex
	ready bool
}

// NewTaxonomyCache creates a new taxonomy cache
func NewTaxonomyCache(db taxonomyLister, ttl time.Duration) *TaxonomyCache {
	return &TaxonomyCache{
		cache: gocache.New(ttl, time.Hour),
		db:    db,
		ttl:   ttl,
		ready: false,
	}
}

// Initialize performs initial cache population (synchronous, blocks until ready)
// Should be called during application startup before accepting requests
func (tc *TaxonomyCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing taxonomy cache...")

	if _, err := tc.refreshSkills(ctx); err != nil {
		logger.Error("Failed to initialize taxonomy cache", zap.Error(err))
		return err
	}
	if _, err := tc.refreshInterests(ctx); err != nil {
		logger.Error("Failed to initialize taxonomy cache", zap.Error(err))
		return err
	}

	tc.mu.Lock()
	tc.ready = true
	tc.mu.Unlock()

	logger.Info("Taxonomy cache initialized successfully")
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (tc *TaxonomyCache) IsReady() bool {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.ready
}

// GetSkills retrieves the skills catalog from cache, refreshing on miss
func (tc *TaxonomyCache) GetSkills(ctx context.Context) ([]models.Skill, error) {
	if !tc.IsReady() {
		return nil, fmt.Errorf("taxonomy cache not initialized")
	}

	if data, found := tc.cache.Get(skillsCacheKey); found {
		metrics.CacheHits.WithLabelValues("taxonomy").Inc()
		skills, ok := data.([]models.Skill)
		if !ok {
			logger.Error("Invalid skills cache data type")
			tc.cache.Delete(skillsCacheKey)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return skills, nil
	}

	metrics.CacheMisses.WithLabelValues("taxonomy").Inc()
	return tc.refreshSkills(ctx)
}

// GetInterests retrieves the interests catalog from cache, refreshing on miss
func (tc *TaxonomyCache) GetInterests(ctx context.Context) ([]models.Interest, error) {
	if !tc.IsReady() {
		return nil, fmt.Errorf("taxonomy cache not initialized")
	}

	if data, found := tc.cache.Get(interestsCacheKey); found {
		metrics.CacheHits.WithLabelValues("taxonomy").Inc()
		interests, ok := data.([]models.Interest)
		if !ok {
			logger.Error("Invalid interests cache data type")
			tc.cache.Delete(interestsCacheKey)
			return nil, fmt.Errorf("invalid cache data type")
		}
		return interests, nil
	}

	metrics.CacheMisses.WithLabelValues("taxonomy").Inc()
	return tc.refreshInterests(ctx)
}

// InvalidateSkills drops the cached skills catalog. Called after a write.
func (tc *TaxonomyCache) InvalidateSkills() {
	tc.cache.Delete(skillsCacheKey)
}

// InvalidateInterests drops the cached interests catalog. Called after a write.
func (tc *TaxonomyCache) InvalidateInterests() {
	tc.cache.Delete(interestsCacheKey)
}

func (tc *TaxonomyCache) refreshSkills(ctx context.Context) ([]models.Skill, error) {
	skills, err := tc.db.GetAllSkills(ctx)
	if err != nil {
		logger.Error("Failed to refresh skills cache", zap.Error(err))
		return nil, err
	}

	tc.cache.Set(skillsCacheKey, skills, tc.ttl)
	logger.Info("Skills cache refreshed", zap.Int("count", len(skills)))
	return skills, nil
}

func (tc *TaxonomyCache) refreshInterests(ctx context.Context) ([]models.Interest, error) {
	interests, err := tc.db.GetAllInterests(ctx)
	if err != nil {
		logger.Error("Failed to refresh interests cache", zap.Error(err))
		return nil, err
	}

	tc.cache.Set(interestsCacheKey, interests, tc.ttl)
	logger.Info("Interests cache refreshed", zap.Int("count", len(interests)))
	return interests, nil
}
