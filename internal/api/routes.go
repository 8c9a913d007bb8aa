package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/lunai-strategist/internal/auth"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/services"
	"github.com/ajharbinger/lunai-strategist/pkg/config"
)

// RouterDeps are the collaborators the HTTP routes need
type RouterDeps struct {
	Services   *services.Services
	Config     *config.Config
	Metrics    MetricsSource
	StoreCheck func() error
	StoreKind  string
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, deps RouterDeps) {
	svcs := deps.Services

	healthHandler := NewHealthHandler(deps.StoreCheck, deps.StoreKind, svcs.RelayConfigured)
	strategistHandler := NewStrategistHandler(svcs.Strategist)
	contactHandler := NewContactHandler(svcs.Contact)
	authHandler := NewAuthHandler(svcs.Auth, deps.Config.IsProduction())
	leadsHandler := NewLeadsHandler(svcs.Export)
	relayHandler := NewRelayHandler(svcs.Contact, svcs.Retry, svcs.RelayConfigured)
	adminHandler := NewAdminHandler(svcs.Strategist, deps.Metrics)

	r.GET("/health", healthHandler.GetHealth)

	// Public routes used by the landing page
	public := r.Group("/api/v1")
	{
		public.GET("/health", healthHandler.GetHealth)

		public.GET("/strategist/options", strategistHandler.GetOptions)
		public.GET("/strategist/catalog", strategistHandler.GetCatalog)
		public.POST("/strategist/recommendations", strategistHandler.Recommend)

		public.POST("/contact", contactHandler.Submit)

		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/logout", authHandler.Logout)
	}

	// Admin routes
	admin := r.Group("/api/v1/admin")
	admin.Use(auth.JWTMiddleware(svcs.JWT))
	admin.Use(auth.RequireRole(string(models.RoleAdmin)))
	{
		admin.GET("/me", authHandler.Me)

		admin.GET("/leads", leadsHandler.GetLeads)
		admin.GET("/leads/export", leadsHandler.ExportLeads)
		admin.GET("/leads/stats", leadsHandler.GetLeadStats)

		admin.GET("/sessions", adminHandler.GetSessions)
		admin.GET("/sessions/stats", adminHandler.GetSessionStats)

		admin.GET("/relay/health", relayHandler.GetRelayHealth)
		admin.GET("/relay/retry", relayHandler.GetRetryStatus)
		admin.POST("/relay/retry/run-once", relayHandler.RunRetryOnce)

		admin.GET("/metrics", adminHandler.GetMetrics)
	}
}
