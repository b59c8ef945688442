package services

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// SearchService handles multi-criteria user discovery
type SearchService struct {
	userRepo repository.UserRepositoryInterface
}

// NewSearchService creates a new SearchService
func NewSearchService(userRepo repository.UserRepositoryInterface) *SearchService {
	return &SearchService{userRepo: userRepo}
}

// SearchUsers runs a paginated multi-criteria search. Filters compose with
// AND; the free-text query matches name, skill names and interest names.
func (s *SearchService) SearchUsers(ctx context.Context, params models.SearchParams) (*models.SearchUsersResult, error) {
	start := time.Now()
	params.Normalize()

	users, total, err := s.userRepo.Search(ctx, params)
	if err != nil {
		metrics.SearchQueries.WithLabelValues("error").Inc()
		logger.Error("User search failed", zap.Error(err))
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.PageSize)))

	metrics.SearchQueries.WithLabelValues("success").Inc()
	metrics.SearchResultsReturned.Observe(float64(len(users)))
	logger.Info("User search completed",
		zap.String("query", params.Query),
		zap.Int("total", total),
		zap.Int("page", params.Page),
		zap.Duration("duration", time.Since(start)),
	)

	return &models.SearchUsersResult{
		Users: users,
		Pagination: models.Pagination{
			Total:      total,
			Page:       params.Page,
			PageSize:   params.PageSize,
			TotalPages: totalPages,
		},
	}, nil
}

// SearchByRole returns one page of users holding the given role
func (s *SearchService) SearchByRole(ctx context.Context, role models.UserRole, page, pageSize int) (*models.SearchUsersResult, error) {
	return s.SearchUsers(ctx, models.SearchParams{
		Role:     &role,
		Page:     page,
		PageSize: pageSize,
	})
}

// UsersSharingSkills returns users who share at least one skill with the
// given user
func (s *SearchService) UsersSharingSkills(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	return s.userRepo.SharingSkills(ctx, userID)
}

// UsersSharingInterests returns users who share at least one interest with
// the given user
func (s *SearchService) UsersSharingInterests(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	return s.userRepo.SharingInterests(ctx, userID)
}
