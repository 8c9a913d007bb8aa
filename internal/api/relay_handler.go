package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// RelayHandler exposes contact relay health and the retry worker to admins
type RelayHandler struct {
	contact    *services.ContactService
	retry      *services.RelayRetryWorker
	configured bool
}

// NewRelayHandler creates a new relay handler
func NewRelayHandler(contactService *services.ContactService, retry *services.RelayRetryWorker, configured bool) *RelayHandler {
	return &RelayHandler{
		contact:    contactService,
		retry:      retry,
		configured: configured,
	}
}

// GetRelayHealth reports delivery health of the contact relay
func (h *RelayHandler) GetRelayHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"relay_health": h.contact.RelayHealth(h.configured),
		"timestamp":    time.Now(),
	})
}

// GetRetryStatus reports whether the retry worker is running and its defaults
func (h *RelayHandler) GetRetryStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":        h.retry.IsRunning(),
		"default_config": services.DefaultRetryConfig(),
		"timestamp":      time.Now(),
	})
}

// RunRetryOnce executes a single redelivery cycle
func (h *RelayHandler) RunRetryOnce(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	config := services.DefaultRetryConfig()
	if batchSize := c.Query("batch_size"); batchSize != "" {
		if parsed, err := strconv.Atoi(batchSize); err == nil && parsed > 0 {
			config.BatchSize = parsed
		}
	}
	if maxAge := c.Query("max_age_hours"); maxAge != "" {
		if parsed, err := strconv.Atoi(maxAge); err == nil && parsed > 0 {
			config.MaxAge = time.Duration(parsed) * time.Hour
		}
	}

	stats, err := h.retry.RunOnce(ctx, config)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Retry cycle completed",
		"stats":     stats,
		"timestamp": time.Now(),
	})
}
