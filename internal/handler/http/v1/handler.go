package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/mobility_map/internal/auth"
	"github.com/shenikar/mobility_map/internal/config"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/service"
	"github.com/sirupsen/logrus"
)

// MapSocket - обработчик websocket-подключений карты (realtime.Hub)
type MapSocket interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	issueService     service.IssueService
	communityService service.CommunityService
	verifier         *auth.Verifier
	limiter          *RateLimiter
	mapSocket        MapSocket
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(
	issueService service.IssueService,
	communityService service.CommunityService,
	verifier *auth.Verifier,
	limiter *RateLimiter,
	mapSocket MapSocket,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		issueService:     issueService,
		communityService: communityService,
		verifier:         verifier,
		limiter:          limiter,
		mapSocket:        mapSocket,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary List issues of a city
// @Description Filtered, sorted and paginated issues of a city. The page is clamped to [1, total_pages].
// @Tags Issues
// @Produce json
// @Param city path string true "City name"
// @Param category query string false "Main category filter, 'all' disables it"
// @Param severity query string false "critical | moderate | minor | all"
// @Param tags query []string false "Tags, any of them must match" collectionFormat(csv)
// @Param q query string false "Case-insensitive search in title and description"
// @Param sort query string false "most_critical | most_recent | most_upvoted" default(most_critical)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(10)
// @Success 200 {object} ListIssuesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /cities/{city}/issues [get]
func (h *Handler) listCityIssues(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	log := h.logger.WithFields(logrus.Fields{"method": "listCityIssues", "city": city})

	var q ListIssuesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(q); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.issueService.QueryIssues(c.Request.Context(), QueryToFilter(city, q))
	if err != nil {
		log.WithError(err).Error("Failed to query issues from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ResultToResponse(res))
}

// @Summary Report a new issue
// @Description Create a new mobility issue. Requires a signed-in user.
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param issue body CreateIssueRequest true "Issue creation request"
// @Success 201 {object} IssueResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues [post]
func (h *Handler) createIssue(c *gin.Context) {
	var input CreateIssueRequest
	log := h.logger.WithField("method", "createIssue")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToIssueModel(input)
	if err := h.issueService.CreateIssue(c.Request.Context(), model, *currentIdentity(c)); err != nil {
		log.WithError(err).Error("Failed to create issue in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, ModelToIssueResponse(model))
}

// @Summary Get issue by ID
// @Description Issue details with community members and documents
// @Tags Issues
// @Produce json
// @Param id path string true "Issue ID"
// @Success 200 {object} IssueResponse
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues/{id} [get]
func (h *Handler) getIssue(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getIssue").WithField("id", id)

	issue, err := h.issueService.GetIssue(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, log, err, "issue not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIssueResponse(issue))
}

// @Summary Archive an issue
// @Description Remove an issue from the map. Requires API key.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Issue ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues/{id} [delete]
func (h *Handler) archiveIssue(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "archiveIssue").WithField("id", id)

	if err := h.issueService.ArchiveIssue(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, log, err, "issue not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Vote for an issue
// @Description One vote per user per issue; each vote adds exactly one to the counter.
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Param vote body VoteRequest true "Vote direction"
// @Success 200 {object} VoteResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 409 {object} map[string]string "Already voted"
// @Failure 429 {object} map[string]string "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues/{id}/vote [post]
func (h *Handler) vote(c *gin.Context) {
	id := c.Param("id")
	user := currentIdentity(c)
	log := h.logger.WithFields(logrus.Fields{"method": "vote", "id": id, "user_id": user.ID})

	var input VoteRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueService.Vote(c.Request.Context(), id, *user, models.VoteDirection(input.Direction))
	if err != nil {
		h.writeServiceError(c, log, err, "issue not found")
		return
	}
	c.JSON(http.StatusOK, VoteResponse{IssueID: issue.ID, Upvotes: issue.Upvotes, Downvotes: issue.Downvotes})
}

// @Summary Join issue community
// @Description Join the community of an issue. Joining twice returns the existing membership with 409.
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Success 201 {object} MembershipResponse
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 409 {object} MembershipResponse "Already a member"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues/{id}/community [post]
func (h *Handler) joinCommunity(c *gin.Context) {
	id := c.Param("id")
	user := currentIdentity(c)
	log := h.logger.WithFields(logrus.Fields{"method": "joinCommunity", "id": id, "user_id": user.ID})

	m, err := h.communityService.Join(c.Request.Context(), id, *user)
	if errors.Is(err, models.ErrAlreadyMember) && m != nil {
		c.JSON(http.StatusConflict, ModelToMembershipResponse(m))
		return
	}
	if err != nil {
		h.writeServiceError(c, log, err, "issue not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToMembershipResponse(m))
}

// @Summary Leave issue community
// @Description Remove your own membership
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Param membershipId path string true "Membership ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid membership ID"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Not your membership"
// @Failure 404 {object} map[string]string "Membership not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /community/{membershipId} [delete]
func (h *Handler) leaveCommunity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("membershipId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership ID"})
		return
	}
	user := currentIdentity(c)
	log := h.logger.WithFields(logrus.Fields{"method": "leaveCommunity", "id": id, "user_id": user.ID})

	if err := h.communityService.Leave(c.Request.Context(), id, *user); err != nil {
		h.writeServiceError(c, log, err, "membership not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Attach a document
// @Description Attach a document link to an issue
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Issue ID"
// @Param document body AddDocumentRequest true "Document"
// @Success 201 {object} models.Document
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Issue not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /issues/{id}/documents [post]
func (h *Handler) addDocument(c *gin.Context) {
	id := c.Param("id")
	user := currentIdentity(c)
	log := h.logger.WithFields(logrus.Fields{"method": "addDocument", "id": id, "user_id": user.ID})

	var input AddDocumentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := &models.Document{IssueID: id, Name: strings.TrimSpace(input.Name), URL: input.URL, Type: input.Type}
	if err := h.communityService.AddDocument(c.Request.Context(), doc, *user); err != nil {
		h.writeServiceError(c, log, err, "issue not found")
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// @Summary Current user
// @Description Identity from the access token, or null for anonymous viewers
// @Tags Auth
// @Produce json
// @Success 200 {object} MeResponse
// @Router /me [get]
func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, MeResponse{User: currentIdentity(c)})
}

// @Summary Map session websocket
// @Description Upgrades to a websocket carrying the map session protocol
// @Tags Map
// @Param city query string false "City to subscribe to right away"
// @Success 101 "Switching Protocols"
// @Router /map/ws [get]
func (h *Handler) mapWS(c *gin.Context) {
	h.mapSocket.ServeWS(c.Writer, c.Request)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeServiceError переводит ошибки сервиса в HTTP статусы
func (h *Handler) writeServiceError(c *gin.Context, log *logrus.Entry, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Warn("Resource not found")
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	case errors.Is(err, models.ErrAlreadyVoted):
		log.WithError(err).Info("Duplicate vote rejected")
		c.JSON(http.StatusConflict, gin.H{"error": "already voted"})
	case errors.Is(err, models.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "already a member"})
	case errors.Is(err, models.ErrForbidden):
		log.WithError(err).Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		log.WithError(err).Error("Service call failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
