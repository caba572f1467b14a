package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)

	// Websocket сессии карты
	if h.mapSocket != nil {
		api.GET("/map/ws", h.mapWS)
	}

	// Чтение доступно анонимно, токен только уточняет пользователя
	public := api.Group("", IdentityMiddleware(h.verifier, h.logger))
	{
		public.GET("/me", h.me)
		public.GET("/cities/:city/issues", h.listCityIssues)
		public.GET("/issues/:id", h.getIssue)
	}

	// Мутации требуют пользователя и ограничены по частоте
	member := public.Group("", RequireIdentity(), h.limiter.Middleware())
	{
		member.POST("/issues", h.createIssue)
		member.POST("/issues/:id/vote", h.vote)
		member.POST("/issues/:id/community", h.joinCommunity)
		member.POST("/issues/:id/documents", h.addDocument)
		member.DELETE("/community/:membershipId", h.leaveCommunity)
	}

	// Административные маршруты по API-ключу
	admin := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		admin.DELETE("/issues/:id", h.archiveIssue)
	}
}
