package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// MetricsSource reports current counter totals by name
type MetricsSource interface {
	Snapshot(ctx context.Context) (map[string]int64, error)
}

// AdminHandler serves strategist session history and service metrics
type AdminHandler struct {
	strategist *services.StrategistService
	metrics    MetricsSource
}

// NewAdminHandler creates a new admin handler. metrics may be nil.
func NewAdminHandler(strategist *services.StrategistService, metrics MetricsSource) *AdminHandler {
	return &AdminHandler{strategist: strategist, metrics: metrics}
}

// GetSessions lists recorded strategist runs, newest first
func (h *AdminHandler) GetSessions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	limit, err := parseIntParam(c.Query("limit"))
	if err != nil {
		badRequest(c, "limit: "+err.Error(), err)
		return
	}
	offset, err := parseIntParam(c.Query("offset"))
	if err != nil {
		badRequest(c, "offset: "+err.Error(), err)
		return
	}

	sessions, err := h.strategist.Sessions(ctx, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":  sessions,
		"count":     len(sessions),
		"timestamp": time.Now(),
	})
}

// GetSessionStats aggregates recorded runs by industry and top recommendation
func (h *AdminHandler) GetSessionStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.strategist.SessionStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":     stats,
		"timestamp": time.Now(),
	})
}

// GetMetrics returns counter totals
func (h *AdminHandler) GetMetrics(c *gin.Context) {
	counters := map[string]int64{}
	if h.metrics != nil {
		var err error
		if counters, err = h.metrics.Snapshot(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"counters":  counters,
		"timestamp": time.Now(),
	})
}
