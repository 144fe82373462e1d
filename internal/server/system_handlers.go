package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justicechristophersam-ai/spaflow/internal/api"
	"github.com/justicechristophersam-ai/spaflow/internal/notify"
)

// Health godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

func registerSystemRoutes(router *gin.Engine, notifier *notify.Service) {
	router.GET("/health", Health)
	router.GET("/metrics", func(c *gin.Context) {
		// Refresh queue gauge on scrape.
		if notifier != nil {
			notifier.QueueLength(c.Request.Context())
		}
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})
}
