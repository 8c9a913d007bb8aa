package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ajharbinger/lunai-strategist/internal/api"
	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	"github.com/ajharbinger/lunai-strategist/internal/database"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/middleware"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
	"github.com/ajharbinger/lunai-strategist/internal/services"
	"github.com/ajharbinger/lunai-strategist/internal/telemetry"
	"github.com/ajharbinger/lunai-strategist/pkg/config"
)

// store is the opened lead/session/user store and how to check and close it
type store struct {
	repos *repository.Repositories
	kind  string
	check func() error
	close func() error
}

func main() {
	envErr := godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	appLog := logger.New(cfg.Environment, cfg.LogLevel)
	defer appLog.Sync()
	if envErr != nil {
		appLog.Debug("No .env file found")
	}

	tel := telemetry.New()

	st, err := openStore(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to open store", err)
	}
	defer st.close()

	provider, err := catalogProvider(cfg)
	if err != nil {
		appLog.Fatal("Failed to load service catalog", err, "path", cfg.CatalogFile)
	}

	svcs := services.NewServices(services.Dependencies{
		Repos:   st.repos,
		Catalog: provider,
		Config:  cfg,
		Logger:  appLog,
		Meter:   tel.MeterProvider(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svcs.Auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		appLog.Fatal("Failed to provision admin account", err)
	}

	if !svcs.RelayConfigured {
		appLog.Warn("EmailJS relay not configured, contact submissions are stored as pending")
	} else if cfg.EnableRelayRetry {
		if err := svcs.Retry.Start(services.RetryConfigFrom(cfg)); err != nil {
			appLog.Error("Failed to start relay retry worker", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
		appLog.Fatal("Invalid trusted proxies", err)
	}

	r.Use(middleware.LoggingMiddleware(appLog))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))
	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(middleware.NewIPRateLimiter(cfg.RequestsPerMin), appLog))
	}
	r.Use(gin.Recovery())

	api.SetupRoutes(r, api.RouterDeps{
		Services:   svcs,
		Config:     cfg,
		Metrics:    tel,
		StoreCheck: st.check,
		StoreKind:  st.kind,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("Server starting", "port", cfg.Port, "store", st.kind, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server shutdown failed", err)
	}
	if svcs.Retry.IsRunning() {
		if err := svcs.Retry.Stop(); err != nil {
			appLog.Error("Failed to stop relay retry worker", err)
		}
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Failed to flush telemetry", err)
	}
	appLog.Info("Server stopped")
}

// openStore connects to Postgres when DATABASE_URL is set and falls back to the embedded store
func openStore(cfg *config.Config, log logger.Logger) (*store, error) {
	if cfg.UsesPostgres() {
		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Connected to Postgres")
		return &store{
			repos: repository.NewRepositories(db.DB),
			kind:  "postgres",
			check: db.HealthCheck,
			close: db.Close,
		}, nil
	}

	bdb, err := database.OpenEmbedded(cfg.EmbeddedPath)
	if err != nil {
		return nil, err
	}
	repos, err := repository.NewEmbeddedRepositories(bdb)
	if err != nil {
		bdb.Close()
		return nil, err
	}
	log.Info("Using embedded store", "path", cfg.EmbeddedPath)
	return &store{
		repos: repos,
		kind:  "embedded",
		check: func() error { return database.PingEmbedded(bdb) },
		close: bdb.Close,
	}, nil
}

func catalogProvider(cfg *config.Config) (catalog.Provider, error) {
	if cfg.CatalogFile == "" {
		return catalog.NewStaticProvider(), nil
	}
	return catalog.NewFileProvider(cfg.CatalogFile)
}
