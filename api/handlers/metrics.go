package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/monitor"
	"github.com/OldStager01/resource-sentinel/pkg/config"
	"github.com/OldStager01/resource-sentinel/pkg/models"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	engine *monitor.Engine
	config *config.APIConfig
}

func NewMetricsHandler(engine *monitor.Engine, cfg *config.APIConfig) *MetricsHandler {
	return &MetricsHandler{
		engine: engine,
		config: cfg,
	}
}

func (h *MetricsHandler) getDefaultLimit() int {
	if h.config != nil && h.config.DefaultLimit > 0 {
		return h.config.DefaultLimit
	}
	return 100
}

func (h *MetricsHandler) getMaxLimit() int {
	if h.config != nil && h.config.MaxLimit > 0 {
		return h.config.MaxLimit
	}
	return 1000
}

// GetCurrent returns the most recent sample.
func (h *MetricsHandler) GetCurrent(c *gin.Context) {
	recent := h.engine.Store().Recent(1)
	if len(recent) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no metrics recorded yet"})
		return
	}

	c.JSON(http.StatusOK, recent[0])
}

// GetHistory returns recorded samples, newest last. A relative range
// ("1h", "24h", "7d") narrows the window before the limit applies.
func (h *MetricsHandler) GetHistory(c *gin.Context) {
	limit := h.parseLimit(c, h.getDefaultLimit())

	var samples []models.Sample
	if rangeStr := c.Query("range"); rangeStr != "" {
		samples = h.engine.Store().Window(h.parseDuration(rangeStr))
	} else {
		samples = h.engine.Store().All()
	}

	if len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  samples,
		"count": len(samples),
	})
}

// GetTrends analyzes all resources over the requested window.
func (h *MetricsHandler) GetTrends(c *gin.Context) {
	window := h.parseWindow(c)

	trends := h.engine.Trends(window)
	if len(trends) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"window_hours": window.Hours(),
			"trends":       gin.H{},
			"message":      "not enough samples for trend analysis",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window_hours": window.Hours(),
		"trends":       trends,
	})
}

// GetTrend analyzes a single resource over the requested window.
func (h *MetricsHandler) GetTrend(c *gin.Context) {
	resource, ok := models.ParseResource(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource: " + c.Param("resource")})
		return
	}

	window := h.parseWindow(c)
	trend := h.engine.Trend(window, resource)
	if trend.Direction == models.DirectionUnknown {
		c.JSON(http.StatusOK, gin.H{
			"window_hours": window.Hours(),
			"trend":        trend,
			"message":      "not enough samples for trend analysis",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"window_hours": window.Hours(),
		"trend":        trend,
	})
}

// GetPredictions forecasts usage for every resource with a configured
// forecast threshold. Resources without enough history are omitted.
func (h *MetricsHandler) GetPredictions(c *gin.Context) {
	predictions := h.engine.Predictions()

	c.JSON(http.StatusOK, gin.H{
		"predictions": predictions,
		"count":       len(predictions),
	})
}

// GetPrediction forecasts a single resource against an optional
// ?threshold= override.
func (h *MetricsHandler) GetPrediction(c *gin.Context) {
	resource, ok := models.ParseResource(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown resource: " + c.Param("resource")})
		return
	}

	if thresholdStr := c.Query("threshold"); thresholdStr != "" {
		threshold, err := strconv.ParseFloat(thresholdStr, 64)
		if err != nil || threshold <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be a positive number"})
			return
		}

		prediction, ok := h.engine.Predict(resource, threshold)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "not enough samples for prediction"})
			return
		}
		c.JSON(http.StatusOK, prediction)
		return
	}

	prediction, ok := h.engine.Predictions()[resource]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not enough samples for prediction"})
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// GetRecommendations combines trend, prediction and container analysis
// into prioritized optimization advice.
func (h *MetricsHandler) GetRecommendations(c *gin.Context) {
	recommendations := h.engine.Recommendations(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

func (h *MetricsHandler) parseWindow(c *gin.Context) time.Duration {
	hours := 24.0
	if hoursStr := c.Query("hours"); hoursStr != "" {
		if parsed, err := strconv.ParseFloat(hoursStr, 64); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	return time.Duration(hours * float64(time.Hour))
}

func (h *MetricsHandler) parseLimit(c *gin.Context, defaultLimit int) int {
	maxLimit := h.getMaxLimit()
	limit := defaultLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxLimit {
				limit = maxLimit
			}
		}
	}
	return limit
}

func (h *MetricsHandler) parseDuration(s string) time.Duration {
	if len(s) < 2 {
		return time.Hour
	}

	unit := s[len(s)-1]
	value, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return time.Hour
	}

	switch unit {
	case 'm':
		return time.Duration(value) * time.Minute
	case 'h':
		return time.Duration(value) * time.Hour
	case 'd':
		return time.Duration(value) * 24 * time.Hour
	default:
		return time.Hour
	}
}
