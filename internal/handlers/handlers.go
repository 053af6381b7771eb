package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/armax-ru/umka-online-gateway/internal/api"
	"github.com/armax-ru/umka-online-gateway/internal/config"
	"github.com/armax-ru/umka-online-gateway/internal/models"
	"github.com/armax-ru/umka-online-gateway/internal/registry"
	"github.com/armax-ru/umka-online-gateway/internal/tracker"
)

// Gateway is the capability surface the HTTP layer consumes.
type Gateway interface {
	RegisterCheck(ctx context.Context, check models.Check) registry.Outcome
	RegisterCorrection(ctx context.Context, correction models.Correction) registry.Outcome
	CheckStatus(ctx context.Context, externalUUID string) registry.Outcome
	SettingsSchema() []config.SchemaItem
}

type GatewayHandler struct {
	gateway Gateway
	tracker *tracker.Tracker
	logger  *slog.Logger
}

func NewGatewayHandler(gateway Gateway, reg *tracker.Tracker, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		gateway: gateway,
		tracker: reg,
		logger:  logger,
	}
}

func (h *GatewayHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/checks", h.RegisterCheck)
	router.POST("/corrections", h.RegisterCorrection)
	router.GET("/checks/:uuid/status", h.CheckStatus)
	router.POST("/callback", h.Callback)
	router.GET("/settings/schema", h.SettingsSchema)
}

// POST /checks - register a till check
func (h *GatewayHandler) RegisterCheck(c *gin.Context) {
	var check models.Check
	if err := c.ShouldBindJSON(&check); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check payload"})
		return
	}

	outcome := h.gateway.RegisterCheck(c.Request.Context(), check)
	if outcome.State == registry.StateAccepted {
		h.tracker.Add(outcome.UUID)
	}

	c.JSON(statusFor(outcome), outcome)
}

// POST /corrections - register a corrective filing
func (h *GatewayHandler) RegisterCorrection(c *gin.Context) {
	var correction models.Correction
	if err := c.ShouldBindJSON(&correction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid correction payload"})
		return
	}

	outcome := h.gateway.RegisterCorrection(c.Request.Context(), correction)
	if outcome.State == registry.StateAccepted {
		h.tracker.Add(outcome.UUID)
	}

	c.JSON(statusFor(outcome), outcome)
}

// GET /checks/:uuid/status - poll a pending registration
func (h *GatewayHandler) CheckStatus(c *gin.Context) {
	outcome := h.gateway.CheckStatus(c.Request.Context(), c.Param("uuid"))

	if outcome.State == registry.StateFiscalized || outcome.State == registry.StateRejected {
		h.tracker.Resolve(c.Param("uuid"), outcome)
	}

	c.JSON(statusFor(outcome), outcome)
}

// POST /callback - registration outcome pushed by the service
func (h *GatewayHandler) Callback(c *gin.Context) {
	var report api.ReportResponse
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid callback payload"})
		return
	}

	if report.UUID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "callback without uuid"})
		return
	}

	outcome := registry.OutcomeFromReport(report)
	if outcome.State == registry.StatePending {
		// The service never calls back with "wait"; treat it as noise.
		c.Status(http.StatusAccepted)
		return
	}

	if !h.tracker.Resolve(report.UUID, outcome) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown registration"})
		return
	}

	c.Status(http.StatusOK)
}

// GET /settings/schema - recognized configuration keys
func (h *GatewayHandler) SettingsSchema(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.gateway.SettingsSchema()})
}

// statusFor keeps HTTP semantics aligned with outcomes: rejections are
// reported as 422 so the caller can distinguish them from transport
// failures of this gateway itself.
func statusFor(outcome registry.Outcome) int {
	if outcome.State == registry.StateRejected {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
