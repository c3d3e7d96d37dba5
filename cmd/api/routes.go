package main

import (
	"database/sql"
	"time"

	"restaurant-ops/internal/calllog"
	"restaurant-ops/internal/httpapi"
	"restaurant-ops/internal/reporting"
	"restaurant-ops/internal/webhook"
	"restaurant-ops/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeDeps struct {
	AuthMW   gin.HandlerFunc
	Webhook  *webhook.Handler
	CallLogs calllog.Repository
	Overview *reporting.Service
	DB       *sql.DB
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, deps routeDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		if deps.DB != nil {
			if err := utils.HealthCheck(c.Request.Context(), deps.DB, 2*time.Second); err != nil {
				c.JSON(503, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Call-event ingestion from the AI voice platforms. Guarded by the
	// shared-secret gate and the per-client rate limiter, not by JWT.
	r.POST("/webhooks/call-events", deps.Webhook.HandleCallEvent)

	// protected dashboard read API
	v1 := r.Group("/v1")
	v1.Use(deps.AuthMW)
	{
		h := httpapi.Handlers{
			CallLogs:  deps.CallLogs,
			Reporting: deps.Overview,
		}

		v1.GET("/call-logs", h.ListCallLogs)
		v1.GET("/overview", h.Overview)
	}
}
