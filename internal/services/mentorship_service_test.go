package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mentorhub/mentorhub-api/config"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

func newMentorshipFixture(cfg *config.Config) (*services.MentorshipService, *MockMentorshipRepository, *MockUserRepository, *MockNotificationRepository) {
	mentorshipRepo := new(MockMentorshipRepository)
	userRepo := new(MockUserRepository)
	notificationRepo := new(MockNotificationRepository)
	if cfg == nil {
		cfg = &config.Config{}
	}
	svc := services.NewMentorshipService(mentorshipRepo, userRepo, notificationRepo, cfg)
	return svc, mentorshipRepo, userRepo, notificationRepo
}

func TestMentorshipService_SendRequest(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	sender := &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: models.RoleMentee}
	receiver := &models.User{ID: 2, Name: "Bob", Email: "bob@example.com", Role: models.RoleMentor}
	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}

	userRepo.On("GetByID", ctx, int64(1)).Return(sender, nil).Once()
	userRepo.On("GetByID", ctx, int64(2)).Return(receiver, nil).Once()
	mentorshipRepo.On("CreateRequest", ctx, int64(1), int64(2), (*string)(nil)).Return(request, nil).Once()
	notificationRepo.On("Create", ctx, int64(2), "New Mentorship Request from Alice", models.NotificationRequestReceived).
		Return(&models.Notification{ID: 1}, nil).Once()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 2})
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, request, result.Request)
	mentorshipRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestMentorshipService_SendRequest_ToSelf(t *testing.T) {
	svc, mentorshipRepo, userRepo, _ := newMentorshipFixture(nil)
	ctx := context.Background()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 1})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mentorshipRepo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMentorshipService_SendRequest_ReceiverNotFound(t *testing.T) {
	svc, mentorshipRepo, userRepo, _ := newMentorshipFixture(nil)
	ctx := context.Background()

	sender := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	userRepo.On("GetByID", ctx, int64(1)).Return(sender, nil).Once()
	userRepo.On("GetByID", ctx, int64(99)).Return(nil, apperrors.NotFoundError("user")).Once()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 99})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mentorshipRepo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMentorshipService_SendRequest_Duplicate(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	sender := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	receiver := &models.User{ID: 2, Name: "Bob", Role: models.RoleMentor}
	userRepo.On("GetByID", ctx, int64(1)).Return(sender, nil).Once()
	userRepo.On("GetByID", ctx, int64(2)).Return(receiver, nil).Once()
	mentorshipRepo.On("CreateRequest", ctx, int64(1), int64(2), (*string)(nil)).
		Return(nil, apperrors.ConflictError("request already sent to this user")).Once()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 2})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMentorshipService_SendRequest_RolePolicyEnforced(t *testing.T) {
	cfg := &config.Config{}
	cfg.Mentorship.EnforceRolePolicy = true
	svc, mentorshipRepo, userRepo, _ := newMentorshipFixture(cfg)
	ctx := context.Background()

	sender := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	receiver := &models.User{ID: 2, Name: "Carol", Role: models.RoleMentee}
	userRepo.On("GetByID", ctx, int64(1)).Return(sender, nil).Once()
	userRepo.On("GetByID", ctx, int64(2)).Return(receiver, nil).Once()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 2})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mentorshipRepo.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMentorshipService_SendRequest_RolePolicyDisabledAllowsSameRole(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	sender := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	receiver := &models.User{ID: 2, Name: "Carol", Role: models.RoleMentee}
	request := &models.Request{ID: 11, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}

	userRepo.On("GetByID", ctx, int64(1)).Return(sender, nil).Once()
	userRepo.On("GetByID", ctx, int64(2)).Return(receiver, nil).Once()
	mentorshipRepo.On("CreateRequest", ctx, int64(1), int64(2), (*string)(nil)).Return(request, nil).Once()
	notificationRepo.On("Create", ctx, int64(2), "New Mentorship Request from Alice", models.NotificationRequestReceived).
		Return(&models.Notification{ID: 2}, nil).Once()

	result, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 2})
	assert.NoError(t, err)
	assert.True(t, result.Success)
}

func TestMentorshipService_RespondToRequest_Accept(t *testing.T) {
	svc, mentorshipRepo, _, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}
	accepted := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusAccepted}
	connection := &models.Connection{ID: 5, MentorID: 2, MenteeID: 1}

	mentorshipRepo.On("GetRequestByID", ctx, int64(10)).Return(request, nil).Once()
	mentorshipRepo.On("AcceptRequest", ctx, int64(10)).Return(accepted, connection, nil).Once()
	notificationRepo.On("Create", ctx, int64(1), "Your mentorship request has been accepted", models.NotificationRequestResponse).
		Return(&models.Notification{ID: 3}, nil).Once()

	result, err := svc.RespondToRequest(ctx, 2, 10, models.StatusAccepted)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StatusAccepted, result.Request.Status)
	mentorshipRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestMentorshipService_RespondToRequest_Decline(t *testing.T) {
	svc, mentorshipRepo, _, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}
	declined := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}

	mentorshipRepo.On("GetRequestByID", ctx, int64(10)).Return(request, nil).Once()
	mentorshipRepo.On("DeclineRequest", ctx, int64(10)).Return(declined, nil).Once()
	notificationRepo.On("Create", ctx, int64(1), "Your mentorship request was declined", models.NotificationRequestResponse).
		Return(&models.Notification{ID: 4}, nil).Once()

	result, err := svc.RespondToRequest(ctx, 2, 10, models.StatusDeclined)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	mentorshipRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestMentorshipService_RespondToRequest_NotReceiver(t *testing.T) {
	svc, mentorshipRepo, _, _ := newMentorshipFixture(nil)
	ctx := context.Background()

	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}
	mentorshipRepo.On("GetRequestByID", ctx, int64(10)).Return(request, nil).Once()

	result, err := svc.RespondToRequest(ctx, 3, 10, models.StatusAccepted)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mentorshipRepo.AssertNotCalled(t, "AcceptRequest", mock.Anything, mock.Anything)
}

func TestMentorshipService_RespondToRequest_AlreadyResolved(t *testing.T) {
	svc, mentorshipRepo, _, _ := newMentorshipFixture(nil)
	ctx := context.Background()

	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusAccepted}
	mentorshipRepo.On("GetRequestByID", ctx, int64(10)).Return(request, nil).Once()

	result, err := svc.RespondToRequest(ctx, 2, 10, models.StatusAccepted)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMentorshipService_CancelConnection(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	mentor := &models.User{ID: 2, Name: "Bob", Role: models.RoleMentor}
	mentee := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	connection := &models.Connection{ID: 5, MentorID: 2, MenteeID: 1}

	userRepo.On("GetByID", ctx, int64(2)).Return(mentor, nil).Once()
	userRepo.On("GetByID", ctx, int64(1)).Return(mentee, nil).Once()
	mentorshipRepo.On("DeleteConnection", ctx, int64(2), int64(1)).Return(connection, nil).Once()
	notificationRepo.On("CreateMany", ctx, []models.Notification{
		{UserID: 1, Content: "Mentorship connection with Bob has been terminated", Type: models.NotificationConnectionCancelled},
		{UserID: 2, Content: "Mentorship connection with Alice has been terminated", Type: models.NotificationConnectionCancelled},
	}).Return(nil).Once()

	result, err := svc.CancelConnectionByMentee(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, connection, result.Connection)
	mentorshipRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestMentorshipService_CancelConnection_NotFound(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	mentor := &models.User{ID: 2, Name: "Bob", Role: models.RoleMentor}
	mentee := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}

	userRepo.On("GetByID", ctx, int64(2)).Return(mentor, nil).Once()
	userRepo.On("GetByID", ctx, int64(1)).Return(mentee, nil).Once()
	mentorshipRepo.On("DeleteConnection", ctx, int64(2), int64(1)).
		Return(nil, apperrors.NotFoundError("mentorship connection")).Once()

	result, err := svc.CancelConnectionByMentor(ctx, 2, 1)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	notificationRepo.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestMentorshipService_ListPendingRequests(t *testing.T) {
	svc, mentorshipRepo, _, _ := newMentorshipFixture(nil)
	ctx := context.Background()

	pending := []models.PendingRequest{
		{Request: models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending},
			Sender: models.UserSummary{ID: 1, Name: "Alice"}},
	}
	mentorshipRepo.On("ListPendingRequests", ctx, int64(2)).Return(pending, nil).Once()

	requests, err := svc.ListPendingRequests(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, pending, requests)
}

func TestMentorshipService_RequestLifecycle(t *testing.T) {
	svc, mentorshipRepo, userRepo, notificationRepo := newMentorshipFixture(nil)
	ctx := context.Background()

	mentee := &models.User{ID: 1, Name: "Alice", Role: models.RoleMentee}
	mentor := &models.User{ID: 2, Name: "Bob", Role: models.RoleMentor}
	request := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusPending}
	accepted := &models.Request{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.StatusAccepted}
	connection := &models.Connection{ID: 5, MentorID: 2, MenteeID: 1}

	userRepo.On("GetByID", ctx, int64(1)).Return(mentee, nil)
	userRepo.On("GetByID", ctx, int64(2)).Return(mentor, nil)
	mentorshipRepo.On("CreateRequest", ctx, int64(1), int64(2), (*string)(nil)).Return(request, nil).Once()
	mentorshipRepo.On("GetRequestByID", ctx, int64(10)).Return(request, nil).Once()
	mentorshipRepo.On("AcceptRequest", ctx, int64(10)).Return(accepted, connection, nil).Once()
	mentorshipRepo.On("DeleteConnection", ctx, int64(2), int64(1)).Return(connection, nil).Once()
	notificationRepo.On("Create", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&models.Notification{ID: 1}, nil)
	notificationRepo.On("CreateMany", ctx, mock.Anything).Return(nil).Once()

	sent, err := svc.SendRequest(ctx, 1, &models.SendRequestPayload{ReceiverID: 2})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, sent.Request.Status)

	resolved, err := svc.RespondToRequest(ctx, 2, 10, models.StatusAccepted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, resolved.Request.Status)

	cancelled, err := svc.CancelConnectionByMentee(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Mentorship connection successfully cancelled", cancelled.Message)

	mentorshipRepo.AssertExpectations(t)
	notificationRepo.AssertExpectations(t)
}

func TestMentorshipService_CanInitiateRequest(t *testing.T) {
	svc, _, _, _ := newMentorshipFixture(nil)

	mentee := &models.User{ID: 1, Role: models.RoleMentee}
	mentor := &models.User{ID: 2, Role: models.RoleMentor}
	otherMentee := &models.User{ID: 3, Role: models.RoleMentee}

	assert.True(t, svc.CanInitiateRequest(mentee, mentor))
	assert.True(t, svc.CanInitiateRequest(mentor, mentee))
	assert.False(t, svc.CanInitiateRequest(mentee, otherMentee))
}
