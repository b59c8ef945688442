package repository

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/database/postgres"
	"github.com/mentorhub/mentorhub-api/internal/models"
)

// NotificationRepository handles the per-user notification ledger
type NotificationRepository struct {
	db *postgres.Client
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *postgres.Client) NotificationRepositoryInterface {
	return &NotificationRepository{db: db}
}

// Create appends a notification to a user's ledger
func (r *NotificationRepository) Create(ctx context.Context, userID int64, content string, notifType models.NotificationType) (*models.Notification, error) {
	return r.db.CreateNotification(ctx, userID, content, notifType)
}

// CreateMany appends several notifications atomically
func (r *NotificationRepository) CreateMany(ctx context.Context, notifications []models.Notification) error {
	return r.db.CreateNotifications(ctx, notifications)
}

// List returns a user's notifications, newest first
func (r *NotificationRepository) List(ctx context.Context, userID int64) ([]models.Notification, error) {
	return r.db.ListNotifications(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return r.db.MarkNotificationRead(ctx, notificationID, userID)
}
