package services

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/pkg/jwt"
)

// AuthServiceInterface defines the interface for authentication operations
type AuthServiceInterface interface {
	Authenticate(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) *models.VerifyTokenResponse
	SessionFromClaims(claims *jwt.UserClaims) *models.UserSession
	GetTokenManager() *jwt.TokenManager
}

// UserServiceInterface defines the interface for user lifecycle operations
type UserServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.UserWithTaxonomy, error)
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, actorID, userID int64, req *models.UpdateProfileRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, userID int64) error
}

// MentorshipServiceInterface defines the interface for the request and
// connection lifecycle
type MentorshipServiceInterface interface {
	SendRequest(ctx context.Context, senderID int64, payload *models.SendRequestPayload) (*models.RequestResult, error)
	RespondToRequest(ctx context.Context, actorID, requestID int64, status models.RequestStatus) (*models.RequestResult, error)
	CancelConnectionByMentee(ctx context.Context, menteeID, mentorID int64) (*models.CancelResult, error)
	CancelConnectionByMentor(ctx context.Context, mentorID, menteeID int64) (*models.CancelResult, error)
	ListPendingRequests(ctx context.Context, userID int64) ([]models.PendingRequest, error)
	ListActiveConnections(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error)
}

// SearchServiceInterface defines the interface for user discovery
type SearchServiceInterface interface {
	SearchUsers(ctx context.Context, params models.SearchParams) (*models.SearchUsersResult, error)
	SearchByRole(ctx context.Context, role models.UserRole, page, pageSize int) (*models.SearchUsersResult, error)
	UsersSharingSkills(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error)
	UsersSharingInterests(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error)
}

// NotificationServiceInterface defines the interface for the notification
// ledger
type NotificationServiceInterface interface {
	ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}

// TaxonomyServiceInterface defines the interface for the skills and
// interests catalogs
type TaxonomyServiceInterface interface {
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListInterests(ctx context.Context) ([]models.Interest, error)
	CreateSkill(ctx context.Context, name string) (*models.Skill, error)
	CreateInterest(ctx context.Context, name string) (*models.Interest, error)
	GetSkillByName(ctx context.Context, name string) (*models.Skill, error)
	GetInterestByName(ctx context.Context, name string) (*models.Interest, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ UserServiceInterface = (*UserService)(nil)
var _ MentorshipServiceInterface = (*MentorshipService)(nil)
var _ SearchServiceInterface = (*SearchService)(nil)
var _ NotificationServiceInterface = (*NotificationService)(nil)
var _ TaxonomyServiceInterface = (*TaxonomyService)(nil)
