package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/query"
	"github.com/shenikar/mobility_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=issue.go -destination=mocks/mock_issue.go -package=mocks

// IssueRepository определяет контракт для работы с бд проблем
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	GetByID(ctx context.Context, id string) (*models.Issue, error)
	ListByCity(ctx context.Context, city string) ([]*models.Issue, error)
	Archive(ctx context.Context, id string) error
	// RecordVote увеличивает счетчик ровно на 1; повторный голос дает models.ErrAlreadyVoted
	RecordVote(ctx context.Context, issueID, userID string, direction models.VoteDirection) error

	GetCityFromCache(ctx context.Context, city string) ([]*models.Issue, error)
	SetCityCache(ctx context.Context, city string, issues []*models.Issue) error
	InvalidateCityCache(ctx context.Context, city string) error
}

// IssueService определяет контракт бизнес-логики проблем
type IssueService interface {
	CreateIssue(ctx context.Context, issue *models.Issue, author models.Identity) error
	GetIssue(ctx context.Context, id string) (*models.Issue, error)
	ListCityIssues(ctx context.Context, city string) ([]*models.Issue, error)
	QueryIssues(ctx context.Context, filter query.Filter) (*query.Result, error)
	Vote(ctx context.Context, issueID string, user models.Identity, direction models.VoteDirection) (*models.Issue, error)
	ArchiveIssue(ctx context.Context, id string) error
}

type issueService struct {
	repo      IssueRepository
	community CommunityRepository
	publisher webhook.EventPublisher
	logger    *logrus.Logger
}

func NewIssueService(repo IssueRepository, community CommunityRepository, publisher webhook.EventPublisher, logger *logrus.Logger) IssueService {
	return &issueService{
		repo:      repo,
		community: community,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateIssue создает обращение; теги приводятся к канонической форме
func (s *issueService) CreateIssue(ctx context.Context, issue *models.Issue, author models.Identity) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "issue",
		"method":  "CreateIssue",
		"city":    issue.City,
		"user_id": author.ID,
	})
	log.Info("Attempting to create a new issue")

	issue.City = strings.TrimSpace(issue.City)
	issue.Status = models.IssueStatusActive
	if err := s.repo.Create(ctx, issue); err != nil {
		log.WithError(err).Error("Failed to create issue in repository")
		return fmt.Errorf("service: could not create issue: %w", err)
	}

	s.invalidateCity(ctx, log, issue.City)
	s.publish(ctx, log, webhook.NewEvent(webhook.EventIssueCreated, issue, author.ID))

	log.WithField("issue_id", issue.ID).Info("Issue created successfully")
	return nil
}

// GetIssue возвращает проблему вместе с сообществом и документами
func (s *issueService) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "GetIssue",
		"issue_id": id,
	})
	log.Debug("Fetching issue by ID")

	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get issue from repository")
		return nil, fmt.Errorf("service: could not get issue: %w", err)
	}

	members, err := s.community.ListMembers(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list community members")
		return nil, fmt.Errorf("service: could not get issue community: %w", err)
	}
	docs, err := s.community.ListDocuments(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list issue documents")
		return nil, fmt.Errorf("service: could not get issue documents: %w", err)
	}
	issue.CommunityMembers = members
	issue.Documents = docs

	return issue, nil
}

// ListCityIssues возвращает все активные проблемы города, сначала из кеша
func (s *issueService) ListCityIssues(ctx context.Context, city string) ([]*models.Issue, error) {
	city = strings.TrimSpace(city)
	log := s.logger.WithFields(logrus.Fields{
		"service": "issue",
		"method":  "ListCityIssues",
		"city":    city,
	})

	cached, err := s.repo.GetCityFromCache(ctx, city)
	if err != nil {
		// кеш недоступен - идем в бд
		log.WithError(err).Warn("Failed to read city cache")
	}
	if cached != nil {
		log.WithField("count", len(cached)).Debug("City issues served from cache")
		return cached, nil
	}

	issues, err := s.repo.ListByCity(ctx, city)
	if err != nil {
		log.WithError(err).Error("Failed to list city issues from repository")
		return nil, fmt.Errorf("service: could not list issues: %w", err)
	}

	if err := s.repo.SetCityCache(ctx, city, issues); err != nil {
		log.WithError(err).Warn("Failed to write city cache")
	}

	log.WithField("count", len(issues)).Info("City issues listed successfully")
	return issues, nil
}

// QueryIssues прогоняет список города через фильтры и пагинацию
func (s *issueService) QueryIssues(ctx context.Context, filter query.Filter) (*query.Result, error) {
	issues, err := s.ListCityIssues(ctx, filter.City)
	if err != nil {
		return nil, err
	}
	res := query.Apply(issues, filter)
	return &res, nil
}

// Vote засчитывает голос пользователя и возвращает обновленную проблему.
// Счетчики отдаются только после успешной записи.
func (s *issueService) Vote(ctx context.Context, issueID string, user models.Identity, direction models.VoteDirection) (*models.Issue, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "issue",
		"method":    "Vote",
		"issue_id":  issueID,
		"user_id":   user.ID,
		"direction": direction,
	})
	log.Info("Recording vote")

	if direction != models.VoteUp && direction != models.VoteDown {
		return nil, fmt.Errorf("service: unknown vote direction %q", direction)
	}

	if err := s.repo.RecordVote(ctx, issueID, user.ID, direction); err != nil {
		if errors.Is(err, models.ErrAlreadyVoted) || errors.Is(err, models.ErrNotFound) {
			log.WithError(err).Warn("Vote rejected")
		} else {
			log.WithError(err).Error("Failed to record vote in repository")
		}
		return nil, fmt.Errorf("service: could not record vote: %w", err)
	}

	issue, err := s.repo.GetByID(ctx, issueID)
	if err != nil {
		log.WithError(err).Error("Failed to reload issue after vote")
		return nil, fmt.Errorf("service: could not reload issue: %w", err)
	}

	s.invalidateCity(ctx, log, issue.City)
	s.publish(ctx, log, webhook.NewEvent(webhook.EventVoteCast, issue, user.ID))

	log.WithFields(logrus.Fields{"upvotes": issue.Upvotes, "downvotes": issue.Downvotes}).Info("Vote recorded successfully")
	return issue, nil
}

// ArchiveIssue снимает проблему с карты
func (s *issueService) ArchiveIssue(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "issue",
		"method":   "ArchiveIssue",
		"issue_id": id,
	})
	log.Info("Attempting to archive issue")

	issue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to archive a non-existent issue")
		return fmt.Errorf("service: issue with id %s not found for archive: %w", id, err)
	}

	if err := s.repo.Archive(ctx, id); err != nil {
		log.WithError(err).Error("Failed to archive issue in repository")
		return fmt.Errorf("service: could not archive issue: %w", err)
	}
	issue.Status = models.IssueStatusArchived

	s.invalidateCity(ctx, log, issue.City)
	s.publish(ctx, log, webhook.NewEvent(webhook.EventIssueArchived, issue, ""))

	log.Info("Issue archived successfully")
	return nil
}

func (s *issueService) invalidateCity(ctx context.Context, log *logrus.Entry, city string) {
	if err := s.repo.InvalidateCityCache(ctx, city); err != nil {
		log.WithError(err).Warn("Failed to invalidate city cache")
	}
}

// publish не влияет на результат операции: событие вторично
func (s *issueService) publish(ctx context.Context, log *logrus.Entry, event webhook.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish issue event")
	}
}
