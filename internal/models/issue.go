package models

import (
	"math"
	"time"
)

const (
	IssueStatusActive   = "active"
	IssueStatusArchived = "archived"
)

// Location - координаты проблемы на карте
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Usable сообщает, можно ли поставить маркер по этим координатам
func (l *Location) Usable() bool {
	if l == nil {
		return false
	}
	if math.IsNaN(l.Latitude) || math.IsNaN(l.Longitude) {
		return false
	}
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// CommunityMember - краткая карточка участника сообщества проблемы
type CommunityMember struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Document - документ, приложенный к проблеме
type Document struct {
	ID         string    `json:"id"`
	IssueID    string    `json:"issue_id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type,omitempty"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Issue - гражданское обращение о проблеме мобильности
type Issue struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Solution         string            `json:"solution"`
	VideoURL         string            `json:"video_url"`
	City             string            `json:"city"`
	Location         *Location         `json:"location,omitempty"`
	Tags             []Tag             `json:"tags"`
	Severity         Severity          `json:"severity"`
	Upvotes          int               `json:"upvotes"`
	Downvotes        int               `json:"downvotes"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	CommunityMembers []CommunityMember `json:"community_members,omitempty"`
	Documents        []Document        `json:"documents,omitempty"`
}

// MainCategory - первый тег, по нему красится кольцо маркера
func (i *Issue) MainCategory() Tag {
	if len(i.Tags) == 0 {
		return TagOther
	}
	return i.Tags[0]
}
