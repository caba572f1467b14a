package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/service"
)

const issueColumns = `
	id::text,
	title,
	description,
	solution,
	video_url,
	city,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	address,
	tags,
	severity,
	upvotes,
	downvotes,
	status,
	created_at,
	updated_at
`

type IssueRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIssueRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IssueRepository {
	return &IssueRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// Create создает новую запись о проблеме в бд
func (r *IssueRepository) Create(ctx context.Context, issue *models.Issue) error {
	var lon, lat *float64
	var address string
	if issue.Location.Usable() {
		lon, lat = &issue.Location.Longitude, &issue.Location.Latitude
		address = issue.Location.Address
	}

	query := `
		INSERT INTO issues (title, description, solution, video_url, city, location, address, tags, severity, status)
		VALUES (
			$1, $2, $3, $4, $5,
			CASE WHEN $6::float8 IS NULL THEN NULL ELSE ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography END,
			$8, $9, $10, $11
		) RETURNING id::text, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		issue.Title,
		issue.Description,
		issue.Solution,
		issue.VideoURL,
		issue.City,
		lon,
		lat,
		address,
		tagStrings(issue.Tags),
		string(issue.Severity),
		issue.Status,
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}
	return nil
}

// GetByID возвращает проблему по идентификатору
func (r *IssueRepository) GetByID(ctx context.Context, id string) (*models.Issue, error) {
	numericID, ok := parseIssueID(id)
	if !ok {
		return nil, fmt.Errorf("issue with id %s: %w", id, models.ErrNotFound)
	}

	query := `SELECT ` + issueColumns + ` FROM issues WHERE id = $1;`
	issue, err := scanIssue(r.db.QueryRow(ctx, query, numericID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("issue with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get issue by id: %w", err)
	}
	return issue, nil
}

// ListByCity возвращает все активные проблемы города без учета регистра
func (r *IssueRepository) ListByCity(ctx context.Context, city string) ([]*models.Issue, error) {
	query := `
		SELECT ` + issueColumns + `
		FROM issues
		WHERE status = 'active' AND lower(city) = lower($1)
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}
	defer rows.Close()

	issues := make([]*models.Issue, 0)
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return issues, nil
}

// Archive устанавливает статус 'archived'
func (r *IssueRepository) Archive(ctx context.Context, id string) error {
	numericID, ok := parseIssueID(id)
	if !ok {
		return fmt.Errorf("issue with id %s: %w", id, models.ErrNotFound)
	}

	query := `
		UPDATE issues SET
			status = 'archived',
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, numericID)
	if err != nil {
		return fmt.Errorf("failed to archive issue: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("issue with id %s not found for archive: %w", id, models.ErrNotFound)
	}
	return nil
}

// RecordVote сохраняет голос и увеличивает счетчик в одной транзакции
func (r *IssueRepository) RecordVote(ctx context.Context, issueID, userID string, direction models.VoteDirection) error {
	numericID, ok := parseIssueID(issueID)
	if !ok {
		return fmt.Errorf("issue with id %s: %w", issueID, models.ErrNotFound)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM issues WHERE id = $1 FOR UPDATE;`, numericID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("issue with id %s: %w", issueID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to lock issue for vote: %w", err)
	}
	if status != models.IssueStatusActive {
		return fmt.Errorf("issue with id %s is %s: %w", issueID, status, models.ErrNotFound)
	}

	cmdTag, err := tx.Exec(ctx, `
		INSERT INTO issue_votes (issue_id, user_id, direction)
		VALUES ($1, $2, $3)
		ON CONFLICT (issue_id, user_id) DO NOTHING;
	`, numericID, userID, string(direction))
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrAlreadyVoted
	}

	counter := "upvotes"
	if direction == models.VoteDown {
		counter = "downvotes"
	}
	_, err = tx.Exec(ctx, `UPDATE issues SET `+counter+` = `+counter+` + 1, updated_at = NOW() WHERE id = $1;`, numericID)
	if err != nil {
		return fmt.Errorf("failed to update vote counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// GetCityFromCache пытается получить список проблем города из Redis
func (r *IssueRepository) GetCityFromCache(ctx context.Context, city string) ([]*models.Issue, error) {
	val, err := r.redisClient.Get(ctx, cityCacheKey(city)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get city issues from cache: %w", err)
	}

	issues := make([]*models.Issue, 0)
	if err := json.Unmarshal(val, &issues); err != nil {
		return nil, fmt.Errorf("failed to unmarshal city issues from cache: %w", err)
	}
	return issues, nil
}

// SetCityCache сохраняет список проблем города в Redis
func (r *IssueRepository) SetCityCache(ctx context.Context, city string, issues []*models.Issue) error {
	if issues == nil {
		issues = []*models.Issue{}
	}
	val, err := json.Marshal(issues)
	if err != nil {
		return fmt.Errorf("failed to marshal city issues for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, cityCacheKey(city), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set city issues in cache: %w", err)
	}
	return nil
}

// InvalidateCityCache удаляет список проблем города из Redis кэша
func (r *IssueRepository) InvalidateCityCache(ctx context.Context, city string) error {
	if err := r.redisClient.Del(ctx, cityCacheKey(city)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate city cache: %w", err)
	}
	return nil
}

func cityCacheKey(city string) string {
	return "issues:city:" + strings.ToLower(strings.TrimSpace(city))
}

func parseIssueID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func tagStrings(tags []models.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}

func scanIssue(row pgx.Row) (*models.Issue, error) {
	issue := &models.Issue{}
	var (
		lat, lon *float64
		address  string
		tags     []string
		severity string
	)
	err := row.Scan(
		&issue.ID,
		&issue.Title,
		&issue.Description,
		&issue.Solution,
		&issue.VideoURL,
		&issue.City,
		&lat,
		&lon,
		&address,
		&tags,
		&severity,
		&issue.Upvotes,
		&issue.Downvotes,
		&issue.Status,
		&issue.CreatedAt,
		&issue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lon != nil {
		issue.Location = &models.Location{Latitude: *lat, Longitude: *lon, Address: address}
	}
	issue.Tags = models.CanonicalTags(tags)
	// неизвестная серьезность сохраняется как есть и в фильтр по уровню не попадает
	issue.Severity = models.Severity(strings.ToLower(strings.TrimSpace(severity)))
	return issue, nil
}
