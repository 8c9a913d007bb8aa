package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/render"
	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// StrategistHandler serves the landing-page strategist widget
type StrategistHandler struct {
	strategist *services.StrategistService
	html       render.Renderer
}

// NewStrategistHandler creates a new strategist handler
func NewStrategistHandler(strategist *services.StrategistService) *StrategistHandler {
	return &StrategistHandler{
		strategist: strategist,
		html:       render.NewHTMLRenderer(),
	}
}

// GetOptions returns the industries, sizes and goal tags the wizard offers
func (h *StrategistHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, h.strategist.Options())
}

// GetCatalog returns the service catalog
func (h *StrategistHandler) GetCatalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cat, err := h.strategist.Catalog(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Recommend scores a wizard submission. With ?format=html the result view is
// returned as a markup fragment for the results step.
func (h *StrategistHandler) Recommend(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req services.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	rec, err := h.strategist.Recommend(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") == "html" {
		var buf bytes.Buffer
		if err := h.html.Render(&buf, rec.View); err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
		return
	}

	c.JSON(http.StatusOK, rec)
}
