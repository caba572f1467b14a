package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/service/mocks"
	"github.com/shenikar/mobility_map/internal/webhook"
	webhook_mocks "github.com/shenikar/mobility_map/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestCommunityService(t *testing.T) (*communityService, *mocks.MockCommunityRepository, *mocks.MockIssueRepository, *webhook_mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockCommunityRepository(ctrl)
	issuesMock := mocks.NewMockIssueRepository(ctrl)
	publisherMock := webhook_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewCommunityService(repoMock, issuesMock, publisherMock, logger)
	return service.(*communityService), repoMock, issuesMock, publisherMock
}

func TestJoin_Success(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()
	user := models.Identity{ID: "user-1", Name: "Asha", AvatarURL: "https://example.test/a.png"}

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "6").Return(&models.Issue{ID: "6", City: "Bangalore"}, nil)
	repoMock.EXPECT().FindMembership(ctx, "6", "user-1").Return(nil, models.ErrNotFound)
	repoMock.EXPECT().AddMember(ctx, gomock.Any()).Return(nil)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e webhook.Event) error {
			assert.Equal(t, webhook.EventMemberJoined, e.Type)
			return nil
		})

	// Действие
	m, err := service.Join(ctx, "6", user)

	// Проверки
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.Equal(t, "Asha", m.Name)
	assert.Equal(t, defaultMemberRole, m.Role)
	assert.Equal(t, "user-1", m.UserID)
}

func TestJoin_AlreadyMember(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()
	existing := &models.Membership{ID: uuid.New(), IssueID: "6", UserID: "user-1"}

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "6").Return(&models.Issue{ID: "6"}, nil)
	repoMock.EXPECT().FindMembership(ctx, "6", "user-1").Return(existing, nil)
	repoMock.EXPECT().AddMember(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	m, err := service.Join(ctx, "6", models.Identity{ID: "user-1"})

	// Проверки
	assert.ErrorIs(t, err, models.ErrAlreadyMember)
	assert.Equal(t, existing, m)
}

func TestJoin_IssueNotFound(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, _ := newTestCommunityService(t)
	ctx := context.Background()

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "404").Return(nil, models.ErrNotFound)
	repoMock.EXPECT().FindMembership(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	m, err := service.Join(ctx, "404", models.Identity{ID: "user-1"})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLeave_Success(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()
	id := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetMembership(ctx, id).Return(&models.Membership{ID: id, IssueID: "6", UserID: "user-1"}, nil)
	repoMock.EXPECT().RemoveMember(ctx, id).Return(nil)
	issuesMock.EXPECT().GetByID(ctx, "6").Return(&models.Issue{ID: "6"}, nil)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	// Действие
	err := service.Leave(ctx, id, models.Identity{ID: "user-1"})

	// Проверки
	require.NoError(t, err)
}

func TestLeave_Forbidden(t *testing.T) {
	// Подготовка
	service, repoMock, _, _ := newTestCommunityService(t)
	ctx := context.Background()
	id := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetMembership(ctx, id).Return(&models.Membership{ID: id, IssueID: "6", UserID: "someone-else"}, nil)
	repoMock.EXPECT().RemoveMember(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.Leave(ctx, id, models.Identity{ID: "user-1"})

	// Проверки
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestAddDocument_Success(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()
	doc := &models.Document{IssueID: "8", Name: "RTI reply", URL: "https://example.test/rti.pdf"}

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "8").Return(&models.Issue{ID: "8"}, nil)
	repoMock.EXPECT().AddDocument(ctx, doc).Return(nil)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	// Действие
	err := service.AddDocument(ctx, doc, models.Identity{ID: "user-1", Name: "Asha"})

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "Asha", doc.UploadedBy)
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestAddDocument_RepoError(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "8").Return(&models.Issue{ID: "8"}, nil)
	repoMock.EXPECT().AddDocument(ctx, gomock.Any()).Return(errors.New("db error"))
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.AddDocument(ctx, &models.Document{IssueID: "8"}, models.Identity{ID: "u"})

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not add document")
}

func TestJoin_ConcurrentJoinReturnsExisting(t *testing.T) {
	// Подготовка
	service, repoMock, issuesMock, publisherMock := newTestCommunityService(t)
	ctx := context.Background()
	existing := &models.Membership{ID: uuid.New(), IssueID: "7", UserID: "user-1", Role: defaultMemberRole}

	// Ожидания
	issuesMock.EXPECT().GetByID(ctx, "7").Return(&models.Issue{ID: "7"}, nil)
	gomock.InOrder(
		repoMock.EXPECT().FindMembership(ctx, "7", "user-1").Return(nil, models.ErrNotFound),
		repoMock.EXPECT().
			AddMember(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, membership *models.Membership) error {
				assert.Equal(t, "7", membership.IssueID)
				assert.Equal(t, "user-1", membership.UserID)
				return models.ErrAlreadyMember
			}),
		repoMock.EXPECT().FindMembership(ctx, "7", "user-1").Return(existing, nil),
	)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	m, err := service.Join(ctx, "7", models.Identity{ID: "user-1"})

	// Проверки
	assert.ErrorIs(t, err, models.ErrAlreadyMember)
	assert.Equal(t, existing, m)
}
