package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/contact"
	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// ContactHandler accepts the landing-page contact form
type ContactHandler struct {
	contact *services.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contactService}
}

// Submit validates, stores and relays a contact form submission
func (h *ContactHandler) Submit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	result, err := h.contact.Submit(ctx, services.ContactRequest{
		Submission: sub,
		UserAgent:  c.Request.UserAgent(),
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
