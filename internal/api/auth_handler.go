package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/auth"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/services"
)

// AuthHandler handles admin sign-in
type AuthHandler struct {
	authService services.AuthService
	secure      bool
}

// NewAuthHandler creates a new auth handler. secure marks the session cookie HTTPS-only.
func NewAuthHandler(authService services.AuthService, secure bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		secure:      secure,
	}
}

// Login authenticates an admin and returns a token, also set as a cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(time.Until(resp.ExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, resp.Token, maxAge, "/", "", h.secure, true)

	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the identity carried by the current token
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _ := c.Get(auth.UserIDKey)
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"email":   c.GetString(auth.UserEmailKey),
		"role":    c.GetString(auth.UserRoleKey),
	})
}
