package repository

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// UserRepositoryInterface defines the interface for user data access
type UserRepositoryInterface interface {
	Create(ctx context.Context, email, passwordHash, name string, bio *string, role models.UserRole, skillIDs, interestIDs []int64) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, name, bio *string, skillIDs, interestIDs *[]int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	GetWithTaxonomy(ctx context.Context, id int64) (*models.UserWithTaxonomy, error)
	GetProfile(ctx context.Context, id int64) (*models.UserProfile, error)
	Search(ctx context.Context, params models.SearchParams) ([]*models.UserWithTaxonomy, int, error)
	SharingSkills(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error)
	SharingInterests(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error)
}

// TaxonomyRepositoryInterface defines the interface for the skills and
// interests catalogs
type TaxonomyRepositoryInterface interface {
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListInterests(ctx context.Context) ([]models.Interest, error)
	CreateSkill(ctx context.Context, name string) (*models.Skill, error)
	CreateInterest(ctx context.Context, name string) (*models.Interest, error)
	GetSkillByName(ctx context.Context, name string) (*models.Skill, error)
	GetInterestByName(ctx context.Context, name string) (*models.Interest, error)
}

// MentorshipRepositoryInterface defines the interface for mentorship
// request and connection data access
type MentorshipRepositoryInterface interface {
	CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*models.Request, error)
	GetRequestByID(ctx context.Context, id int64) (*models.Request, error)
	AcceptRequest(ctx context.Context, requestID int64) (*models.Request, *models.Connection, error)
	DeclineRequest(ctx context.Context, requestID int64) (*models.Request, error)
	ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error)
	ListConnections(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error)
	DeleteConnection(ctx context.Context, mentorID, menteeID int64) (*models.Connection, error)
}

// NotificationRepositoryInterface defines the interface for the per-user
// notification ledger
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, userID int64, content string, notifType models.NotificationType) (*models.Notification, error)
	CreateMany(ctx context.Context, notifications []models.Notification) error
	List(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
}
