package httpapi

import (
	"net/http"
	"strings"

	"restaurant-ops/internal/calllog"
	"restaurant-ops/internal/reporting"
	"restaurant-ops/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal modules, return JSON.
type Handlers struct {
	CallLogs  calllog.Repository
	Reporting *reporting.Service
}

// ListCallLogs serves the dashboard call-log table.
// Query params: q (phone substring), status, direction.
func (h Handlers) ListCallLogs(c *gin.Context) {
	if h.CallLogs == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call logs not configured"})
		return
	}

	f := calllog.ListFilter{
		PhoneContains: strings.TrimSpace(c.Query("q")),
	}

	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := calllog.CallStatus(strings.ToUpper(v))
		switch status {
		case calllog.StatusCompleted, calllog.StatusMissed, calllog.StatusFailed:
			f.Status = status
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
	}

	if v := strings.TrimSpace(c.Query("direction")); v != "" {
		direction := calllog.CallDirection(strings.ToUpper(v))
		switch direction {
		case calllog.DirectionInbound, calllog.DirectionOutbound:
			f.Direction = direction
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid direction filter"})
			return
		}
	}

	logs, err := h.CallLogs.List(c.Request.Context(), f)
	if err != nil {
		logger.FromGin(c).Error("call log list failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if logs == nil {
		logs = []calllog.CallLog{}
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// Overview serves the dashboard's daily KPI card.
func (h Handlers) Overview(c *gin.Context) {
	if h.Reporting == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}

	ov, err := h.Reporting.DailyOverview(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("overview failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, ov)
}
