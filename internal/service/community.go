package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/webhook"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=community.go -destination=mocks/mock_community.go -package=mocks

const defaultMemberRole = "Community Member"

// CommunityRepository определяет контракт для работы с сообществами и документами
type CommunityRepository interface {
	ListMembers(ctx context.Context, issueID string) ([]models.CommunityMember, error)
	FindMembership(ctx context.Context, issueID, userID string) (*models.Membership, error)
	GetMembership(ctx context.Context, id uuid.UUID) (*models.Membership, error)
	AddMember(ctx context.Context, membership *models.Membership) error
	RemoveMember(ctx context.Context, id uuid.UUID) error
	ListDocuments(ctx context.Context, issueID string) ([]models.Document, error)
	AddDocument(ctx context.Context, doc *models.Document) error
}

// CommunityService определяет контракт работы с сообществом проблемы
type CommunityService interface {
	Join(ctx context.Context, issueID string, user models.Identity) (*models.Membership, error)
	Leave(ctx context.Context, membershipID uuid.UUID, user models.Identity) error
	AddDocument(ctx context.Context, doc *models.Document, user models.Identity) error
}

type communityService struct {
	repo      CommunityRepository
	issues    IssueRepository
	publisher webhook.EventPublisher
	logger    *logrus.Logger
}

func NewCommunityService(repo CommunityRepository, issues IssueRepository, publisher webhook.EventPublisher, logger *logrus.Logger) CommunityService {
	return &communityService{
		repo:      repo,
		issues:    issues,
		publisher: publisher,
		logger:    logger,
	}
}

// Join добавляет пользователя в сообщество. Если он уже участник,
// возвращается существующая запись вместе с models.ErrAlreadyMember.
func (s *communityService) Join(ctx context.Context, issueID string, user models.Identity) (*models.Membership, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "community",
		"method":   "Join",
		"issue_id": issueID,
		"user_id":  user.ID,
	})
	log.Info("Attempting to join issue community")

	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		log.WithError(err).Warn("Attempted to join a non-existent issue")
		return nil, fmt.Errorf("service: could not join community: %w", err)
	}

	existing, err := s.repo.FindMembership(ctx, issueID, user.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Error("Failed to look up membership")
		return nil, fmt.Errorf("service: could not join community: %w", err)
	}
	if existing != nil {
		log.Info("User is already a community member")
		return existing, models.ErrAlreadyMember
	}

	m := &models.Membership{
		ID:        uuid.New(),
		IssueID:   issueID,
		UserID:    user.ID,
		Name:      user.Name,
		Role:      defaultMemberRole,
		AvatarURL: user.AvatarURL,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		if errors.Is(err, models.ErrAlreadyMember) {
			// параллельный запрос успел раньше
			existing, findErr := s.repo.FindMembership(ctx, issueID, user.ID)
			if findErr == nil {
				return existing, models.ErrAlreadyMember
			}
		}
		log.WithError(err).Error("Failed to add community member")
		return nil, fmt.Errorf("service: could not join community: %w", err)
	}

	s.publish(ctx, log, webhook.NewEvent(webhook.EventMemberJoined, issue, user.ID))
	log.WithField("membership_id", m.ID).Info("Joined issue community successfully")
	return m, nil
}

// Leave удаляет запись об участии. Удалить можно только свою запись.
func (s *communityService) Leave(ctx context.Context, membershipID uuid.UUID, user models.Identity) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "community",
		"method":        "Leave",
		"membership_id": membershipID,
		"user_id":       user.ID,
	})
	log.Info("Attempting to leave issue community")

	m, err := s.repo.GetMembership(ctx, membershipID)
	if err != nil {
		log.WithError(err).Warn("Failed to get membership")
		return fmt.Errorf("service: could not leave community: %w", err)
	}
	if m.UserID != user.ID {
		log.Warn("User tried to remove someone else's membership")
		return models.ErrForbidden
	}

	if err := s.repo.RemoveMember(ctx, membershipID); err != nil {
		log.WithError(err).Error("Failed to remove community member")
		return fmt.Errorf("service: could not leave community: %w", err)
	}

	if issue, err := s.issues.GetByID(ctx, m.IssueID); err == nil {
		s.publish(ctx, log, webhook.NewEvent(webhook.EventMemberLeft, issue, user.ID))
	}
	log.Info("Left issue community successfully")
	return nil
}

// AddDocument прикрепляет ссылку на документ к проблеме
func (s *communityService) AddDocument(ctx context.Context, doc *models.Document, user models.Identity) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "community",
		"method":   "AddDocument",
		"issue_id": doc.IssueID,
		"user_id":  user.ID,
	})
	log.Info("Attempting to add issue document")

	issue, err := s.issues.GetByID(ctx, doc.IssueID)
	if err != nil {
		log.WithError(err).Warn("Attempted to attach a document to a non-existent issue")
		return fmt.Errorf("service: could not add document: %w", err)
	}

	doc.ID = uuid.NewString()
	doc.UploadedBy = user.Name
	doc.CreatedAt = time.Now().UTC()
	if err := s.repo.AddDocument(ctx, doc); err != nil {
		log.WithError(err).Error("Failed to add document in repository")
		return fmt.Errorf("service: could not add document: %w", err)
	}

	s.publish(ctx, log, webhook.NewEvent(webhook.EventDocumentAdded, issue, user.ID))
	log.WithField("document_id", doc.ID).Info("Document added successfully")
	return nil
}

func (s *communityService) publish(ctx context.Context, log *logrus.Entry, event webhook.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish community event")
	}
}
