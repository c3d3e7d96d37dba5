package webhook

import (
	"net/http"
	"strings"
	"time"

	"restaurant-ops/internal/calllog"
	"restaurant-ops/internal/metrics"
	"restaurant-ops/internal/ratelimit"
	"restaurant-ops/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	secretHeader       = "x-webhook-secret"
	forwardedForHeader = "X-Forwarded-For"

	// fallbackClientKey partitions rate-limit state for callers with no
	// forwarded-for header (direct local delivery, health probes).
	fallbackClientKey = "local"

	rateLimitKeyPrefix = "webhook:"
)

// Handler runs the call-event ingestion pipeline:
// secret gate -> rate limiter -> body reader -> normalizer -> validator ->
// sanitizer -> record writer. Each stage short-circuits with its own
// response; nothing after a failed stage runs.
type Handler struct {
	Secret  string
	Limiter ratelimit.Limiter
	Limit   int
	Window  time.Duration
	Repo    calllog.Repository

	// MaxBodyBytes caps how much body the reader will consume.
	MaxBodyBytes int64

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// HandleCallEvent is the POST /webhooks/call-events handler.
func (h *Handler) HandleCallEvent(c *gin.Context) {
	log := logger.FromGin(c)

	// Secret gate runs before any body work so unauthenticated traffic
	// costs nothing.
	if c.GetHeader(secretHeader) != h.Secret || h.Secret == "" {
		metrics.RecordWebhook(metrics.OutcomeUnauthorized)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
		return
	}

	key := rateLimitKeyPrefix + ClientKey(c.Request)
	allowed, err := h.Limiter.Allow(c.Request.Context(), key, h.Limit, h.Window)
	if err != nil {
		// Limiter backend failure (redis down): fail open rather than
		// dropping authenticated call data on the floor.
		log.Error("rate limiter failed", "err", err)
		allowed = true
	}
	if !allowed {
		metrics.RecordWebhook(metrics.OutcomeRateLimited)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
		return
	}

	if h.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	}

	raw := ReadBody(c.Request)
	log.Info("DBG readbody", "nil", raw == nil, "len", len(raw))
	payload := Normalize(raw, h.now)
	log.Info("DBG normalized", "nil", payload == nil, "len", len(payload), "payload", payload)

	event, issues := Validate(payload)
	if len(issues) > 0 {
		metrics.RecordWebhook(metrics.OutcomeInvalid)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "Invalid payload",
			"issues": issues,
		})
		return
	}

	record := calllog.CallLog{
		ID:              uuid.NewString(),
		CustomerName:    SanitizePlainText(event.CustomerName),
		Phone:           SanitizePlainText(event.Phone),
		Direction:       calllog.ClassifyDirection(event.Direction),
		Status:          calllog.ClassifyStatus(event.Status),
		DurationSeconds: event.Duration,
		Timestamp:       event.Timestamp,
		RecordingURL:    event.RecordingURL,
		Transcription:   SanitizePlainText(event.Transcription),
		OrderSummary:    SanitizePlainText(event.OrderSummary),
		AIConfidence:    event.AIConfidence,
		CreatedAt:       h.now().UTC(),
	}

	if err := h.Repo.Create(c.Request.Context(), record); err != nil {
		metrics.RecordWebhook(metrics.OutcomeError)
		log.Error("call log create failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	metrics.RecordWebhook(metrics.OutcomeAccepted)
	log.Info("call event persisted",
		"call_id", record.ID,
		"direction", string(record.Direction),
		"status", string(record.Status),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// ClientKey derives the rate-limit partition key for a request: the first
// forwarded-for value, or a fixed fallback when the header is absent.
func ClientKey(r *http.Request) string {
	xff := r.Header.Get(forwardedForHeader)
	if xff == "" {
		return fallbackClientKey
	}
	if i := strings.Index(xff, ","); i >= 0 {
		xff = xff[:i]
	}
	xff = strings.TrimSpace(xff)
	if xff == "" {
		return fallbackClientKey
	}
	return xff
}
