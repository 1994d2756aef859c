package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/OldStager01/resource-sentinel/internal/collector"
	"github.com/OldStager01/resource-sentinel/internal/monitor"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	engine    *monitor.Engine
	collector collector.Collector
}

func NewHealthHandler(engine *monitor.Engine, col collector.Collector) *HealthHandler {
	return &HealthHandler{engine: engine, collector: col}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"

	if err := h.collector.HealthCheck(ctx); err != nil {
		checks["collector"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["collector"] = "healthy"
	}

	if err := h.engine.Store().PersistError(); err != nil {
		checks["metrics_persistence"] = "degraded: " + err.Error()
		if status == "healthy" {
			status = "degraded"
		}
	} else {
		checks["metrics_persistence"] = "healthy"
	}

	if err := h.engine.Registry().PersistError(); err != nil {
		checks["alert_persistence"] = "degraded: " + err.Error()
		if status == "healthy" {
			status = "degraded"
		}
	} else {
		checks["alert_persistence"] = "healthy"
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.collector.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:    "not ready",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
