package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/mobility_map/internal/models"
)

const (
	eventQueueKey = "issue_events"
)

type EventType string

const (
	EventIssueCreated  EventType = "issue.created"
	EventIssueArchived EventType = "issue.archived"
	EventVoteCast      EventType = "issue.vote_cast"
	EventMemberJoined  EventType = "community.member_joined"
	EventMemberLeft    EventType = "community.member_left"
	EventDocumentAdded EventType = "issue.document_added"
)

// Event - событие по проблеме. Issue - актуальная версия проблемы после изменения.
type Event struct {
	Type      EventType     `json:"type"`
	IssueID   string        `json:"issue_id"`
	City      string        `json:"city"`
	UserID    string        `json:"user_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	Issue     *models.Issue `json:"issue,omitempty"`
}

// NewEvent заполняет событие по проблеме
func NewEvent(t EventType, issue *models.Issue, userID string) Event {
	return Event{
		Type:      t,
		IssueID:   issue.ID,
		City:      issue.City,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Issue:     issue,
	}
}

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// EventPublisher - интерфейс для публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisEventPublisher кладет события в очередь Redis, откуда их забирает Worker
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal issue event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, eventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish issue event to Redis: %w", err)
	}
	return nil
}

// MultiPublisher рассылает событие всем получателям и собирает ошибки
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
