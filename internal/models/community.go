package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyVoted  = errors.New("already voted")
	ErrAlreadyMember = errors.New("already a member")
	ErrForbidden     = errors.New("forbidden")
)

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Identity - текущий пользователь от провайдера аутентификации
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Membership - запись об участии пользователя в сообществе проблемы
type Membership struct {
	ID        uuid.UUID `json:"id"`
	IssueID   string    `json:"issue_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// Member возвращает краткую карточку для панели сообщества
func (m *Membership) Member() CommunityMember {
	return CommunityMember{
		ID:        m.ID.String(),
		Name:      m.Name,
		Role:      m.Role,
		AvatarURL: m.AvatarURL,
	}
}
