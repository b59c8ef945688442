package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash, name string, bio *string, role models.UserRole, skillIDs, interestIDs []int64) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, name, bio, role, skillIDs, interestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, name, bio *string, skillIDs, interestIDs *[]int64) (*models.User, error) {
	args := m.Called(ctx, id, name, bio, skillIDs, interestIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) GetWithTaxonomy(ctx context.Context, id int64) (*models.UserWithTaxonomy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserWithTaxonomy), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, params models.SearchParams) ([]*models.UserWithTaxonomy, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.UserWithTaxonomy), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) SharingSkills(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserWithTaxonomy), args.Error(1)
}

func (m *MockUserRepository) SharingInterests(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserWithTaxonomy), args.Error(1)
}

// MockMentorshipRepository is a mock implementation of MentorshipRepositoryInterface
type MockMentorshipRepository struct {
	mock.Mock
}

func (m *MockMentorshipRepository) CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*models.Request, error) {
	args := m.Called(ctx, senderID, receiverID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockMentorshipRepository) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockMentorshipRepository) AcceptRequest(ctx context.Context, requestID int64) (*models.Request, *models.Connection, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Request), args.Get(1).(*models.Connection), args.Error(2)
}

func (m *MockMentorshipRepository) DeclineRequest(ctx context.Context, requestID int64) (*models.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockMentorshipRepository) ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PendingRequest), args.Error(1)
}

func (m *MockMentorshipRepository) ListConnections(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConnectionWithUsers), args.Error(1)
}

func (m *MockMentorshipRepository) DeleteConnection(ctx context.Context, mentorID, menteeID int64) (*models.Connection, error) {
	args := m.Called(ctx, mentorID, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Connection), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepositoryInterface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, userID int64, content string, notifType models.NotificationType) (*models.Notification, error) {
	args := m.Called(ctx, userID, content, notifType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

// MockTaxonomyRepository is a mock implementation of TaxonomyRepositoryInterface
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListSkills(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *MockTaxonomyRepository) ListInterests(ctx context.Context) ([]models.Interest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Interest), args.Error(1)
}

func (m *MockTaxonomyRepository) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockTaxonomyRepository) CreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}

func (m *MockTaxonomyRepository) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockTaxonomyRepository) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Interest), args.Error(1)
}
