package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the service and its store
type HealthHandler struct {
	storeCheck      func() error
	storeKind       string
	relayConfigured bool
}

// NewHealthHandler creates a health handler. storeCheck may be nil.
func NewHealthHandler(storeCheck func() error, storeKind string, relayConfigured bool) *HealthHandler {
	return &HealthHandler{
		storeCheck:      storeCheck,
		storeKind:       storeKind,
		relayConfigured: relayConfigured,
	}
}

// GetHealth returns 200 when the store answers and 503 otherwise
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := http.StatusOK
	store := gin.H{"kind": h.storeKind, "healthy": true}

	if h.storeCheck != nil {
		if err := h.storeCheck(); err != nil {
			status = http.StatusServiceUnavailable
			store["healthy"] = false
			store["error"] = err.Error()
		}
	}

	c.JSON(status, gin.H{
		"healthy":          status == http.StatusOK,
		"store":            store,
		"relay_configured": h.relayConfigured,
		"timestamp":        time.Now(),
	})
}
