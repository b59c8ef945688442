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

// GetAllSkills fetches all skills ordered by name
func (c *Client) GetAllSkills(ctx context.Context) ([]models.Skill, error) {
	start := time.Now()
	operation := "getAllSkills"

	rows, err := c.pool.Query(ctx, "SELECT id, name FROM skills ORDER BY name")
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query skills: %w", err)
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

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(skills)))

	return skills, nil
}

// GetAllInterests fetches all interests ordered by name
func (c *Client) GetAllInterests(ctx context.Context) ([]models.Interest, error) {
	start := time.Now()
	operation := "getAllInterests"

	rows, err := c.pool.Query(ctx, "SELECT id, name FROM interests ORDER BY name")
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query interests: %w", err)
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

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(interests)))

	return interests, nil
}

// CreateSkill creates a skill by name, returning the existing row when the
// name is already taken
func (c *Client) CreateSkill(ctx context.Context, name string) (*models.Skill, error) {
	return c.upsertNamed(ctx, "createSkill", "skills", name)
}

// CreateInterest creates an interest by name, returning the existing row
// when the name is already taken
func (c *Client) CreateInterest(ctx context.Context, name string) (*models.Interest, error) {
	skill, err := c.upsertNamed(ctx, "createInterest", "interests", name)
	if err != nil {
		return nil, err
	}
	return &models.Interest{ID: skill.ID, Name: skill.Name}, nil
}

// GetSkillByName returns a skill by its exact name
func (c *Client) GetSkillByName(ctx context.Context, name string) (*models.Skill, error) {
	return c.namedByName(ctx, "getSkillByName", "skills", "skill", name)
}

// GetInterestByName returns an interest by its exact name
func (c *Client) GetInterestByName(ctx context.Context, name string) (*models.Interest, error) {
	row, err := c.namedByName(ctx, "getInterestByName", "interests", "interest", name)
	if err != nil {
		return nil, err
	}
	return &models.Interest{ID: row.ID, Name: row.Name}, nil
}

// upsertNamed implements get-or-create for the flat name tables. The upsert
// updates name to itself so RETURNING yields the row either way.
func (c *Client) upsertNamed(ctx context.Context, operation, table, name string) (*models.Skill, error) {
	start := time.Now()

	query := fmt.Sprintf(
		"INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = $1 RETURNING id, name",
		table,
	)

	var row models.Skill
	err := c.pool.QueryRow(ctx, query, name).Scan(&row.ID, &row.Name)
	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to upsert into %s: %w", table, err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("name", name))

	return &row, nil
}

func (c *Client) namedByName(ctx context.Context, operation, table, resource, name string) (*models.Skill, error) {
	start := time.Now()

	var row models.Skill
	query := fmt.Sprintf("SELECT id, name FROM %s WHERE name = $1", table)
	err := c.pool.QueryRow(ctx, query, name).Scan(&row.ID, &row.Name)
	duration := metrics.MeasureDuration(start)

	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError(resource)
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	recordMetrics(operation, "success", duration)
	return &row, nil
}
