package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
)

var qualifiedUserColumns = "u." + strings.ReplaceAll(userColumns, ", ", ", u.")

// sortColumns whitelists the sortable user fields. Anything else falls back
// to name.
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

// SearchUsers runs a multi-criteria user search and returns one page of
// matches plus the total match count. Filter categories compose with AND;
// the text query matches name, skill names and interest names with OR.
func (c *Client) SearchUsers(ctx context.Context, params models.SearchParams) ([]*models.User, int, error) {
	start := time.Now()
	operation := "searchUsers"

	conditions := []string{}
	args := []any{}

	addArg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Query != "" {
		p := addArg("%" + params.Query + "%")
		conditions = append(conditions, fmt.Sprintf(`(u.name ILIKE %[1]s
			OR EXISTS (SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id
				WHERE us.user_id = u.id AND s.name ILIKE %[1]s)
			OR EXISTS (SELECT 1 FROM user_interests ui JOIN interests i ON i.id = ui.interest_id
				WHERE ui.user_id = u.id AND i.name ILIKE %[1]s))`, p))
	}
	if len(params.SkillIDs) > 0 {
		p := addArg(params.SkillIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM user_skills us WHERE us.user_id = u.id AND us.skill_id = ANY(%s))", p))
	}
	if len(params.InterestIDs) > 0 {
		p := addArg(params.InterestIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM user_interests ui WHERE ui.user_id = u.id AND ui.interest_id = ANY(%s))", p))
	}
	if params.Role != nil {
		p := addArg(*params.Role)
		conditions = append(conditions, fmt.Sprintf("u.role = %s", p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT count(*) FROM users u" + where
	if err := c.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	orderColumn, ok := sortColumns[params.SortBy]
	if !ok {
		orderColumn = "name"
	}
	direction := "ASC"
	if params.SortOrder == models.SortDesc {
		direction = "DESC"
	}

	limitArg := addArg(params.PageSize)
	offsetArg := addArg(params.Offset())

	// id ASC keeps the ordering total so pages never overlap
	pageQuery := fmt.Sprintf(
		"SELECT %s FROM users u%s ORDER BY u.%s %s, u.id ASC LIMIT %s OFFSET %s",
		qualifiedUserColumns, where, orderColumn, direction, limitArg, offsetArg,
	)

	rows, err := c.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := models.ScanUsers(rows)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, 0, fmt.Errorf("failed to scan user rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration,
		zap.Int("total", total),
		zap.Int("page_size", len(users)),
	)

	return users, total, nil
}

// UsersSharingSkills returns users who share at least one skill with the
// given user, excluding the user themselves
func (c *Client) UsersSharingSkills(ctx context.Context, userID int64) ([]*models.User, error) {
	return c.usersSharingTaxonomy(ctx, "usersSharingSkills", "user_skills", "skill_id", userID)
}

// UsersSharingInterests returns users who share at least one interest with
// the given user, excluding the user themselves
func (c *Client) UsersSharingInterests(ctx context.Context, userID int64) ([]*models.User, error) {
	return c.usersSharingTaxonomy(ctx, "usersSharingInterests", "user_interests", "interest_id", userID)
}

func (c *Client) usersSharingTaxonomy(ctx context.Context, operation, table, column string, userID int64) ([]*models.User, error) {
	start := time.Now()

	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM users u
		JOIN %[2]s a ON a.user_id = u.id
		WHERE a.%[3]s IN (SELECT %[3]s FROM %[2]s WHERE user_id = $1)
		AND u.id <> $1
		ORDER BY u.name, u.id`, qualifiedUserColumns, table, column)

	rows, err := c.pool.Query(ctx, query, userID)
	if err != nil {
		duration := metrics.MeasureDuration(start)
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to query shared %s users: %w", column, err)
	}

	users, err := models.ScanUsers(rows)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan user rows: %w", err)
	}

	duration := metrics.MeasureDuration(start)
	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int("count", len(users)))

	return users, nil
}
