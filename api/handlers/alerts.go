package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/alerts"
	"github.com/OldStager01/resource-sentinel/internal/events"
	"github.com/OldStager01/resource-sentinel/internal/metrics"
	"github.com/OldStager01/resource-sentinel/pkg/models"
	"github.com/OldStager01/resource-sentinel/pkg/validation"
	"github.com/gin-gonic/gin"
)

type AlertsHandler struct {
	registry  *alerts.Registry
	publisher *events.Publisher
}

func NewAlertsHandler(registry *alerts.Registry, publisher *events.Publisher) *AlertsHandler {
	return &AlertsHandler{
		registry:  registry,
		publisher: publisher,
	}
}

// List returns active (unacknowledged) alerts, most severe first.
// ?min_severity= filters out anything below the given level.
func (h *AlertsHandler) List(c *gin.Context) {
	minSeverity := models.Severity(c.Query("min_severity"))
	if minSeverity != "" && !minSeverity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity: " + string(minSeverity)})
		return
	}

	active := h.registry.Active(minSeverity)

	c.JSON(http.StatusOK, gin.H{
		"alerts": active,
		"count":  len(active),
	})
}

type CreateAlertRequest struct {
	Type      string  `json:"type" binding:"required"`
	Severity  string  `json:"severity" binding:"required"`
	Message   string  `json:"message" binding:"required"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}

// Create raises an alert manually. An unacknowledged alert of the same
// type absorbs the request and is returned unchanged.
func (h *AlertsHandler) Create(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := validation.ValidateAlertType(req.Type); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateAlertMessage(req.Message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	severity := models.Severity(req.Severity)
	if !severity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown severity: " + req.Severity})
		return
	}

	alert, created := h.registry.Create(req.Type, severity, validation.SanitizeString(req.Message), req.Value, req.Threshold)
	if created {
		h.publisher.AlertCreated(alert)
		c.JSON(http.StatusCreated, alert)
		return
	}

	c.JSON(http.StatusOK, alert)
}

// Acknowledge marks an alert as handled, removing it from the active set.
func (h *AlertsHandler) Acknowledge(c *gin.Context) {
	id := c.Param("id")

	if !h.registry.Acknowledge(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found or already acknowledged"})
		return
	}

	h.publisher.AlertAcknowledged(id)
	metrics.Get().IncAlertsAcknowledged()

	c.JSON(http.StatusOK, gin.H{
		"id":           id,
		"acknowledged": true,
	})
}

// ClearAcknowledged permanently removes acknowledged alerts.
func (h *AlertsHandler) ClearAcknowledged(c *gin.Context) {
	removed := h.registry.ClearAcknowledged()
	if removed > 0 {
		h.publisher.AlertsCleared(removed, "acknowledged")
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// ClearStale removes alerts older than ?hours= regardless of state.
func (h *AlertsHandler) ClearStale(c *gin.Context) {
	hours := 24.0
	if hoursStr := c.Query("hours"); hoursStr != "" {
		parsed, err := strconv.ParseFloat(hoursStr, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive number"})
			return
		}
		hours = parsed
	}

	removed := h.registry.ClearOlderThan(time.Duration(hours * float64(time.Hour)))
	if removed > 0 {
		h.publisher.AlertsCleared(removed, "stale")
	}

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"hours":   hours,
	})
}
