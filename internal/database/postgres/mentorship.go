package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

const requestColumns = "id, sender_id, receiver_id, message, status, created_at, updated_at"
const connectionColumns = "id, mentor_id, mentee_id, start_date, end_date"

// CreateRequest inserts a new pending mentorship request. The unique
// (sender_id, receiver_id) constraint is the arbiter for concurrent
// duplicate sends.
func (c *Client) CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*models.Request, error) {
	start := time.Now()
	operation := "createRequest"

	query := `INSERT INTO mentorship_requests (sender_id, receiver_id, message)
		VALUES ($1, $2, $3)
		RETURNING ` + requestColumns

	request, err := models.ScanRequest(c.pool.QueryRow(ctx, query, senderID, receiverID, message))
	duration := metrics.MeasureDuration(start)

	if err != nil {
		if isUniqueViolation(err) {
			recordMetrics(operation, "conflict", duration)
			return nil, apperrors.ConflictError("request already sent to this user")
		}
		if isForeignKeyViolation(err) {
			recordMetrics(operation, "not_found", duration)
			return nil, apperrors.NotFoundError("user")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create mentorship request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("request_id", request.ID),
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", receiverID),
	)

	return request, nil
}

// GetRequestByID fetches a mentorship request by primary key
func (c *Client) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	start := time.Now()
	operation := "getRequestByID"

	query := "SELECT " + requestColumns + " FROM mentorship_requests WHERE id = $1"

	request, err := models.ScanRequest(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("mentorship request")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to query mentorship request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return request, nil
}

// AcceptRequest resolves a pending request to accepted and establishes the
// mentor-mentee connection in the same transaction. The conditional update
// guards against concurrent double-resolution; the losing call gets a
// conflict.
func (c *Client) AcceptRequest(ctx context.Context, requestID int64) (*models.Request, *models.Connection, error) {
	start := time.Now()
	operation := "acceptRequest"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updateQuery := `UPDATE mentorship_requests
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING ` + requestColumns

	request, err := models.ScanRequest(tx.QueryRow(ctx, updateQuery, requestID, models.StatusAccepted, models.StatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "conflict", metrics.MeasureDuration(start))
		return nil, nil, apperrors.ConflictError("request is no longer pending")
	}
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to accept mentorship request: %w", err)
	}

	// The receiver of an accepted request becomes the mentor
	connQuery := `INSERT INTO mentorship_connections (mentor_id, mentee_id)
		VALUES ($1, $2)
		RETURNING ` + connectionColumns

	connection, err := models.ScanConnection(tx.QueryRow(ctx, connQuery, request.ReceiverID, request.SenderID))
	if err != nil {
		duration := metrics.MeasureDuration(start)
		if isUniqueViolation(err) {
			recordMetrics(operation, "conflict", duration)
			return nil, nil, apperrors.ConflictError("connection already exists between these users")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create mentorship connection: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("request_id", requestID),
		zap.Int64("connection_id", connection.ID),
	)

	return request, connection, nil
}

// DeclineRequest removes a pending request. A declined proposal leaves no
// row behind, so the sender may propose again later.
func (c *Client) DeclineRequest(ctx context.Context, requestID int64) (*models.Request, error) {
	start := time.Now()
	operation := "declineRequest"

	query := `DELETE FROM mentorship_requests
		WHERE id = $1 AND status = $2
		RETURNING ` + requestColumns

	request, err := models.ScanRequest(c.pool.QueryRow(ctx, query, requestID, models.StatusPending))
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "conflict", duration)
		return nil, apperrors.ConflictError("request is no longer pending")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to decline mentorship request: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("request_id", requestID))

	return request, nil
}

// ListPendingRequests returns the pending requests addressed to a user,
// newest first, each annotated with the sender's identity
func (c *Client) ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error) {
	start := time.Now()
	operation := "listPendingRequests"

	query := `SELECT r.id, r.sender_id, r.receiver_id, r.message, r.status, r.created_at, r.updated_at,
			u.id, u.name, u.email, u.role
		FROM mentorship_requests r
		JOIN users u ON u.id = r.sender_id
		WHERE r.receiver_id = $1 AND r.status = $2
		ORDER BY r.created_at DESC`

	rows, err := c.pool.Query(ctx, query, receiverID, models.StatusPending)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query pending requests: %w", err)
	}
	defer rows.Close()

	requests := []models.PendingRequest{}
	for rows.Next() {
		var pr models.PendingRequest
		err := rows.Scan(
			&pr.ID, &pr.SenderID, &pr.ReceiverID, &pr.Message, &pr.Status, &pr.CreatedAt, &pr.UpdatedAt,
			&pr.Sender.ID, &pr.Sender.Name, &pr.Sender.Email, &pr.Sender.Role,
		)
		if err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan pending request row: %w", err)
		}
		requests = append(requests, pr)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating pending request rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("receiver_id", receiverID),
		zap.Int("count", len(requests)),
	)

	return requests, nil
}

// ListConnectionsForUser returns the connections a user participates in,
// on either side, newest first, annotated with both parties' identities
func (c *Client) ListConnectionsForUser(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error) {
	start := time.Now()
	operation := "listConnectionsForUser"

	query := `SELECT c.id, c.mentor_id, c.mentee_id, c.start_date, c.end_date,
			m.id, m.name, m.email, m.role,
			e.id, e.name, e.email, e.role
		FROM mentorship_connections c
		JOIN users m ON m.id = c.mentor_id
		JOIN users e ON e.id = c.mentee_id
		WHERE c.mentor_id = $1 OR c.mentee_id = $1
		ORDER BY c.start_date DESC`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	connections := []models.ConnectionWithUsers{}
	for rows.Next() {
		var cw models.ConnectionWithUsers
		err := rows.Scan(
			&cw.ID, &cw.MentorID, &cw.MenteeID, &cw.StartDate, &cw.EndDate,
			&cw.Mentor.ID, &cw.Mentor.Name, &cw.Mentor.Email, &cw.Mentor.Role,
			&cw.Mentee.ID, &cw.Mentee.Name, &cw.Mentee.Email, &cw.Mentee.Role,
		)
		if err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan connection row: %w", err)
		}
		connections = append(connections, cw)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating connection rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("user_id", userID),
		zap.Int("count", len(connections)),
	)

	return connections, nil
}

// GetConnectionsForUser returns the bare connections a user participates in
func (c *Client) GetConnectionsForUser(ctx context.Context, userID int64) ([]models.Connection, error) {
	start := time.Now()
	operation := "getConnectionsForUser"

	query := "SELECT " + connectionColumns + ` FROM mentorship_connections
		WHERE mentor_id = $1 OR mentee_id = $1
		ORDER BY start_date DESC`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}
	defer rows.Close()

	connections := []models.Connection{}
	for rows.Next() {
		conn, err := models.ScanConnection(rows)
		if err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan connection row: %w", err)
		}
		connections = append(connections, *conn)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating connection rows: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return connections, nil
}

// DeleteConnection removes the connection between a mentor and a mentee.
// The resolved request row between the pair goes with it, so either party
// may propose a fresh mentorship afterwards. Returns the removed connection
// or a not found error when no such connection exists.
func (c *Client) DeleteConnection(ctx context.Context, mentorID, menteeID int64) (*models.Connection, error) {
	start := time.Now()
	operation := "deleteConnection"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `DELETE FROM mentorship_connections
		WHERE mentor_id = $1 AND mentee_id = $2
		RETURNING ` + connectionColumns

	connection, err := models.ScanConnection(tx.QueryRow(ctx, query, mentorID, menteeID))
	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", metrics.MeasureDuration(start))
		return nil, apperrors.NotFoundError("mentorship connection")
	}
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to delete connection: %w", err)
	}

	cleanupQuery := `DELETE FROM mentorship_requests
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)`
	if _, err := tx.Exec(ctx, cleanupQuery, mentorID, menteeID); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to clean up resolved requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int64("mentor_id", mentorID),
		zap.Int64("mentee_id", menteeID),
	)

	return connection, nil
}
