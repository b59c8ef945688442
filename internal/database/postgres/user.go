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

const userColumns = "id, email, password_hash, name, bio, role, created_at, updated_at"

// CreateUser inserts a new user together with their initial skill and
// interest associations in a single transaction
func (c *Client) CreateUser(ctx context.Context, email, passwordHash, name string, bio *string, role models.UserRole, skillIDs, interestIDs []int64) (*models.User, error) {
	start := time.Now()
	operation := "createUser"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO users (email, password_hash, name, bio, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	user, err := models.ScanUser(tx.QueryRow(ctx, query, email, passwordHash, name, bio, role))
	if err != nil {
		duration := metrics.MeasureDuration(start)
		if isUniqueViolation(err) {
			recordMetrics(operation, "conflict", duration)
			return nil, apperrors.ConflictError("email already registered")
		}
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := insertAssociations(ctx, tx, "user_skills", "skill_id", user.ID, skillIDs); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, err
	}
	if err := insertAssociations(ctx, tx, "user_interests", "interest_id", user.ID, interestIDs); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("user_id", user.ID))

	return user, nil
}

// GetUserByID fetches a user by primary key
func (c *Client) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	start := time.Now()
	operation := "getUserByID"

	query := "SELECT " + userColumns + " FROM users WHERE id = $1"

	user, err := models.ScanUser(c.pool.QueryRow(ctx, query, id))
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("user")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return user, nil
}

// GetUserByEmail fetches a user by their unique email address
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()
	operation := "getUserByEmail"

	query := "SELECT " + userColumns + " FROM users WHERE email = $1"

	user, err := models.ScanUser(c.pool.QueryRow(ctx, query, email))
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("user")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return user, nil
}

// UserExists reports whether a user with the given ID exists
func (c *Client) UserExists(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	operation := "userExists"

	var exists bool
	err := c.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return exists, nil
}

// UpdateUser updates the mutable profile fields of a user and, when the
// corresponding slice is non-nil, replaces the skill and interest
// association sets. Everything happens in one transaction.
func (c *Client) UpdateUser(ctx context.Context, id int64, name, bio *string, skillIDs, interestIDs *[]int64) (*models.User, error) {
	start := time.Now()
	operation := "updateUser"

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE users
		SET name = COALESCE($2, name),
		    bio = COALESCE($3, bio),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := models.ScanUser(tx.QueryRow(ctx, query, id, name, bio))
	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", metrics.MeasureDuration(start))
		return nil, apperrors.NotFoundError("user")
	}
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if skillIDs != nil {
		if err := replaceAssociations(ctx, tx, "user_skills", "skill_id", id, *skillIDs); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, err
		}
	}
	if interestIDs != nil {
		if err := replaceAssociations(ctx, tx, "user_interests", "interest_id", id, *interestIDs); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("user_id", id))

	return user, nil
}

// DeleteUser removes a user. Requests, connections, associations and
// notifications referencing the user are removed by ON DELETE CASCADE.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	start := time.Now()
	operation := "deleteUser"

	tag, err := c.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics(operation, "not_found", duration)
		return apperrors.NotFoundError("user")
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("user_id", id))
	return nil
}

// GetUserSkills returns the skills attached to a user, ordered by name
func (c *Client) GetUserSkills(ctx context.Context, userID int64) ([]models.Skill, error) {
	start := time.Now()
	operation := "getUserSkills"

	query := `SELECT s.id, s.name FROM skills s
		JOIN user_skills us ON us.skill_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.name`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query user skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating skill rows: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return skills, nil
}

// GetUserInterests returns the interests attached to a user, ordered by name
func (c *Client) GetUserInterests(ctx context.Context, userID int64) ([]models.Interest, error) {
	start := time.Now()
	operation := "getUserInterests"

	query := `SELECT i.id, i.name FROM interests i
		JOIN user_interests ui ON ui.interest_id = i.id
		WHERE ui.user_id = $1
		ORDER BY i.name`

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query user interests: %w", err)
	}
	defer rows.Close()

	interests := []models.Interest{}
	for rows.Next() {
		var i models.Interest
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan interest row: %w", err)
		}
		interests = append(interests, i)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating interest rows: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return interests, nil
}

// insertAssociations inserts rows linking a user to the given taxonomy IDs
func insertAssociations(ctx context.Context, tx pgx.Tx, table, column string, userID int64, ids []int64) error {
	for _, id := range ids {
		query := fmt.Sprintf(
			"INSERT INTO %s (user_id, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			table, column,
		)
		if _, err := tx.Exec(ctx, query, userID, id); err != nil {
			if isForeignKeyViolation(err) {
				return apperrors.ValidationError(column, fmt.Sprintf("unknown id %d", id))
			}
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

// replaceAssociations swaps a user's association set for a new one
func replaceAssociations(ctx context.Context, tx pgx.Tx, table, column string, userID int64, ids []int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table)
	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return insertAssociations(ctx, tx, table, column, userID, ids)
}
