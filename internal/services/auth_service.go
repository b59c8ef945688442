package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/jwt"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// AuthService handles credential verification and token issuance
type AuthService struct {
	userRepo     repository.UserRepositoryInterface
	tokenManager *jwt.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepositoryInterface, tokenManager *jwt.TokenManager) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

// Authenticate verifies a user's credentials and issues a signed token.
// Unknown email and wrong password produce the same response so the
// endpoint does not leak which emails are registered.
func (s *AuthService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	start := time.Now()

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			metrics.UserLogins.WithLabelValues("failure").Inc()
			return nil, apperrors.ForbiddenError("invalid email or password")
		}
		logger.Error("Failed to look up user for login", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", zap.Int64("user_id", user.ID))
		metrics.UserLogins.WithLabelValues("failure").Inc()
		return nil, apperrors.ForbiddenError("invalid email or password")
	}

	token, err := s.tokenManager.GenerateToken(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		logger.Error("Failed to generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apperrors.InternalError("failed to generate token")
	}

	metrics.UserLogins.WithLabelValues("success").Inc()
	logger.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.Duration("duration", time.Since(start)),
	)

	return &models.LoginResponse{
		Success: true,
		Token:   token,
		User:    user,
	}, nil
}

// VerifyToken inspects a presented token and reports whether it grants an
// authenticated session. Never returns an error for a bad token; the
// outcome is encoded in the response reason.
func (s *AuthService) VerifyToken(ctx context.Context, token string) *models.VerifyTokenResponse {
	if token == "" {
		return &models.VerifyTokenResponse{Reason: models.TokenMissing}
	}

	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return &models.VerifyTokenResponse{Reason: models.TokenExpired}
		}
		return &models.VerifyTokenResponse{Reason: models.TokenInvalid}
	}

	return &models.VerifyTokenResponse{
		IsAuthenticated: true,
		Reason:          models.TokenValid,
		Claims: &models.TokenClaims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Expiry: claims.ExpiresAt.Unix(),
		},
	}
}

// SessionFromClaims converts validated token claims into a session principal
func (s *AuthService) SessionFromClaims(claims *jwt.UserClaims) *models.UserSession {
	return &models.UserSession{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      models.UserRole(claims.Role),
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
}

// GetTokenManager exposes the token manager for middleware wiring
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}
