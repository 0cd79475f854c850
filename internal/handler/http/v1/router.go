package v1

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// NewRouter собирает gin.Engine с общими middleware и маршрутами API v1.
// metricsHandler может быть nil.
func (h *Handler) NewRouter(metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(h.logger), RequestLogger(h.logger))
	// PDF уже сжат, повторно его не сжимаем
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/reports", "/metrics"})))
	router.Use(BodyLimit(h.cfg.MaxBodyBytes))

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := api.Group("")
	if len(h.cfg.APIKeys) > 0 {
		protected.Use(APIKeyAuthMiddleware(h.cfg, h.logger))
	}

	// Валидация записей и журнал выгрузок
	incidents := protected.Group("/incidents")
	{
		incidents.POST("/validate", h.validateIncident)
		incidents.GET("/:id/exports", h.listExports)
	}

	// Генерация отчетов
	protected.POST("/reports", h.generateReport)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
