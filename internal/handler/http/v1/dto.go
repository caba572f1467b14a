package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/mobility_map/internal/models"
)

// CreateIssueRequest DTO для создания проблемы
// @Description DTO для создания проблемы. Координаты передаются парой или не передаются вовсе.
type CreateIssueRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=200"`
	Description string   `json:"description" validate:"required,max=5000"`
	Solution    string   `json:"solution,omitempty" validate:"max=5000"`
	VideoURL    string   `json:"video_url,omitempty" validate:"omitempty,url"`
	City        string   `json:"city" validate:"required,max=100"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"required_with=Latitude,omitempty,longitude"`
	Address     string   `json:"address,omitempty" validate:"max=255"`
	Tags        []string `json:"tags" validate:"max=10,dive,required,max=50"`
	Severity    string   `json:"severity" validate:"required,oneof=critical moderate minor"`
}

// ListIssuesQuery параметры выборки проблем города
type ListIssuesQuery struct {
	Category string   `form:"category" validate:"max=50"`
	Severity string   `form:"severity" validate:"max=20"`
	Tags     []string `form:"tags" validate:"max=20,dive,max=50"`
	Search   string   `form:"q" validate:"max=200"`
	Sort     string   `form:"sort" validate:"omitempty,oneof=most_critical most_recent most_upvoted"`
	Page     int      `form:"page" validate:"gte=0"`
	PerPage  int      `form:"per_page" validate:"gte=0,lte=100"`
}

// VoteRequest DTO голоса
// @Description DTO голоса за проблему
type VoteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// AddDocumentRequest DTO ссылки на документ
// @Description DTO для прикрепления документа к проблеме
type AddDocumentRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type,omitempty" validate:"max=50"`
}

// LocationResponse координаты проблемы
type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// IssueResponse DTO проблемы для карточки списка и панели деталей
// @Description DTO проблемы
type IssueResponse struct {
	ID               string                   `json:"id"`
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	Solution         string                   `json:"solution,omitempty"`
	VideoURL         string                   `json:"video_url,omitempty"`
	City             string                   `json:"city"`
	Location         *LocationResponse        `json:"location,omitempty"`
	Tags             []models.Tag             `json:"tags"`
	Category         models.Tag               `json:"category"`
	CategoryColor    string                   `json:"category_color"`
	Severity         models.Severity          `json:"severity"`
	SeverityColor    string                   `json:"severity_color"`
	Upvotes          int                      `json:"upvotes"`
	Downvotes        int                      `json:"downvotes"`
	Status           string                   `json:"status"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	CommunityMembers []models.CommunityMember `json:"community_members,omitempty"`
	Documents        []models.Document        `json:"documents,omitempty"`
}

// ListIssuesResponse DTO страницы проблем
// @Description Текущая страница отфильтрованных проблем
type ListIssuesResponse struct {
	Issues       []*IssueResponse `json:"issues"`
	VisibleCount int              `json:"visible_count"`
	TotalPages   int              `json:"total_pages"`
	CurrentPage  int              `json:"current_page"`
	ItemsPerPage int              `json:"items_per_page"`
}

// VoteResponse DTO свежих счетчиков после голоса
type VoteResponse struct {
	IssueID   string `json:"issue_id"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}

// MembershipResponse DTO записи об участии
type MembershipResponse struct {
	ID        uuid.UUID `json:"id"`
	IssueID   string    `json:"issue_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// MeResponse - текущий пользователь; user = null для анонимного просмотра
type MeResponse struct {
	User *models.Identity `json:"user"`
}
