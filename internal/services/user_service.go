package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// UserService handles registration and profile lifecycle
type UserService struct {
	userRepo   repository.UserRepositoryInterface
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepositoryInterface, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account with a hashed password and their
// initial skill and interest associations
func (s *UserService) Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error) {
	start := time.Now()

	role := models.UserRole(req.Role)
	if !role.IsValid() {
		return nil, apperrors.ValidationError("role", "must be MENTOR or MENTEE")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, apperrors.InternalError("failed to hash password")
	}

	user, err := s.userRepo.Create(ctx, email, string(hash), req.Name, req.Bio, role, req.SkillIDs, req.InterestIDs)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Registration rejected: email taken", zap.String("email", email))
		} else {
			logger.Error("Failed to create user", zap.Error(err))
		}
		return nil, err
	}

	metrics.UserRegistrations.WithLabelValues(string(role)).Inc()
	logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(role)),
		zap.Duration("duration", time.Since(start)),
	)

	return user, nil
}

// GetUser retrieves a user with their skills and interests
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.UserWithTaxonomy, error) {
	return s.userRepo.GetWithTaxonomy(ctx, id)
}

// GetProfile retrieves the full profile view for a user
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, id)
}

// UpdateProfile applies profile changes on behalf of the acting user. Users
// may only update their own profile.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, userID int64, req *models.UpdateProfileRequest) (*models.User, error) {
	if actorID != userID {
		logger.Warn("Profile update denied",
			zap.Int64("actor_id", actorID),
			zap.Int64("target_id", userID),
		)
		return nil, apperrors.ForbiddenError("cannot update another user's profile")
	}

	user, err := s.userRepo.Update(ctx, userID, req.Name, req.Bio, req.SkillIDs, req.InterestIDs)
	if err != nil {
		return nil, err
	}

	metrics.ProfileUpdates.Inc()
	logger.Info("Profile updated", zap.Int64("user_id", userID))

	return user, nil
}

// DeleteUser removes the acting user's account. Requests, connections and
// notifications referencing the account are removed with it.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if actorID != userID {
		return apperrors.ForbiddenError("cannot delete another user's account")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info("User account deleted", zap.Int64("user_id", userID))
	return nil
}
