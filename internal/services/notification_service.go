package services

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// NotificationService serves the per-user notification ledger
type NotificationService struct {
	notificationRepo repository.NotificationRepositoryInterface
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListNotifications returns a user's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	return s.notificationRepo.List(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Acting on
// another user's notification yields not found.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}
