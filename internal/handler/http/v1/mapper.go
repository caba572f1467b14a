package v1

import (
	"strings"

	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/query"
)

// DTOToIssueModel преобразует DTO создания в доменную модель; теги канонизируются
func DTOToIssueModel(dto CreateIssueRequest) *models.Issue {
	severity, _ := models.ParseSeverity(dto.Severity)
	issue := &models.Issue{
		Title:       strings.TrimSpace(dto.Title),
		Description: strings.TrimSpace(dto.Description),
		Solution:    strings.TrimSpace(dto.Solution),
		VideoURL:    dto.VideoURL,
		City:        strings.TrimSpace(dto.City),
		Tags:        models.CanonicalTags(dto.Tags),
		Severity:    severity,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		issue.Location = &models.Location{
			Latitude:  *dto.Latitude,
			Longitude: *dto.Longitude,
			Address:   strings.TrimSpace(dto.Address),
		}
	}
	return issue
}

// QueryToFilter собирает фильтр города из параметров запроса
func QueryToFilter(city string, q ListIssuesQuery) query.Filter {
	f := query.DefaultFilter(city)
	if q.Category != "" {
		f.Category = q.Category
	}
	if q.Severity != "" {
		f.Severity = q.Severity
	}
	for _, raw := range q.Tags {
		// tags=a,b и tags=a&tags=b равнозначны
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}
	f.Search = q.Search
	if q.Sort != "" {
		f.SortBy = query.ParseSortBy(q.Sort)
	}
	if q.Page > 0 {
		f.CurrentPage = q.Page
	}
	if q.PerPage > 0 {
		f.ItemsPerPage = q.PerPage
	}
	return f
}

// ModelToIssueResponse преобразует доменную модель в DTO для ответа
func ModelToIssueResponse(model *models.Issue) *IssueResponse {
	category := model.MainCategory()
	resp := &IssueResponse{
		ID:               model.ID,
		Title:            model.Title,
		Description:      model.Description,
		Solution:         model.Solution,
		VideoURL:         model.VideoURL,
		City:             model.City,
		Tags:             model.Tags,
		Category:         category,
		CategoryColor:    models.CategoryColor(category),
		Severity:         model.Severity,
		SeverityColor:    models.SeverityColor(model.Severity),
		Upvotes:          model.Upvotes,
		Downvotes:        model.Downvotes,
		Status:           model.Status,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		CommunityMembers: model.CommunityMembers,
		Documents:        model.Documents,
	}
	if resp.Tags == nil {
		resp.Tags = []models.Tag{}
	}
	if model.Location.Usable() {
		resp.Location = &LocationResponse{
			Latitude:  model.Location.Latitude,
			Longitude: model.Location.Longitude,
			Address:   model.Location.Address,
		}
	}
	return resp
}

// ModelsToIssueResponses преобразует слайс моделей в слайс DTO
func ModelsToIssueResponses(models []*models.Issue) []*IssueResponse {
	responses := make([]*IssueResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIssueResponse(model)
	}
	return responses
}

func ResultToResponse(res *query.Result) *ListIssuesResponse {
	return &ListIssuesResponse{
		Issues:       ModelsToIssueResponses(res.Page),
		VisibleCount: res.VisibleCount,
		TotalPages:   res.TotalPages,
		CurrentPage:  res.CurrentPage,
		ItemsPerPage: res.ItemsPerPage,
	}
}

func ModelToMembershipResponse(m *models.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:        m.ID,
		IssueID:   m.IssueID,
		Name:      m.Name,
		Role:      m.Role,
		AvatarURL: m.AvatarURL,
		JoinedAt:  m.JoinedAt,
	}
}
