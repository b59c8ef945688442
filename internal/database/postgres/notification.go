package postgres

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

const notificationColumns = "id, user_id, content, type, is_read, created_at"

// CreateNotification appends a notification to a user's ledger
func (c *Client) CreateNotification(ctx context.Context, userID int64, content string, notifType models.NotificationType) (*models.Notification, error) {
	start := time.Now()
	operation := "createNotification"

	query := `INSERT INTO notifications (user_id, content, type)
		VALUES ($1, $2, $3)
		RETURNING ` + notificationColumns

	var n models.Notification
	err := c.pool.QueryRow(ctx, query, userID, content, notifType).
		Scan(&n.ID, &n.UserID, &n.Content, &n.Type, &n.IsRead, &n.CreatedAt)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if isForeignKeyViolation(err) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("user")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return &n, nil
}

// CreateNotifications appends several notifications atomically. Used when a
// single event notifies both sides of a connection.
func (c *Client) CreateNotifications(ctx context.Context, notifications []models.Notification) error {
	start := time.Now()
	operation := "createNotifications"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := "INSERT INTO notifications (user_id, content, type) VALUES ($1, $2, $3)"
	for _, n := range notifications {
		if _, err := tx.Exec(ctx, query, n.UserID, n.Content, n.Type); err != nil {
			duration := metrics.MeasureDuration(start)
			recordMetrics(operation, "error", duration)
			logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return nil
}

// ListNotifications returns a user's notifications, newest first
func (c *Client) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	start := time.Now()
	operation := "listNotifications"

	query := "SELECT " + notificationColumns + ` FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.Type, &n.IsRead, &n.CreatedAt); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return notifications, nil
}

// MarkNotificationRead marks one of the user's notifications as read. The
// user filter keeps one user from touching another's ledger.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID, userID int64) error {
	start := time.Now()
	operation := "markNotificationRead"

	query := "UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2"

	tag, err := c.pool.Exec(ctx, query, notificationID, userID)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("notification")
	}

	recordMetrics(operation, "success", duration)
	return nil
}
