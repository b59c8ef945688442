package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/services"
)

func TestNotificationService_ListNotifications(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notificationRepo)
	ctx := context.Background()

	notifications := []models.Notification{
		{ID: 2, UserID: 1, Content: "Your mentorship request has been accepted", Type: models.NotificationRequestResponse},
		{ID: 1, UserID: 1, Content: "New Mentorship Request from Bob", Type: models.NotificationRequestReceived},
	}
	notificationRepo.On("List", ctx, int64(1)).Return(notifications, nil).Once()

	got, err := svc.ListNotifications(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, notifications, got)
	notificationRepo.AssertExpectations(t)
}

func TestNotificationService_MarkRead(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notificationRepo)
	ctx := context.Background()

	notificationRepo.On("MarkRead", ctx, int64(5), int64(1)).Return(nil).Once()
	assert.NoError(t, svc.MarkRead(ctx, 5, 1))
	notificationRepo.AssertExpectations(t)
}

func TestNotificationService_MarkRead_NotOwner(t *testing.T) {
	notificationRepo := new(MockNotificationRepository)
	svc := services.NewNotificationService(notificationRepo)
	ctx := context.Background()

	// The repository scopes the update by owner, so another user's
	// notification id behaves like a missing row
	notificationRepo.On("MarkRead", ctx, int64(5), int64(2)).
		Return(apperrors.NotFoundError("notification")).Once()

	err := svc.MarkRead(ctx, 5, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}