package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/ajharbinger/lunai-strategist/internal/auth"
	"github.com/ajharbinger/lunai-strategist/internal/catalog"
	"github.com/ajharbinger/lunai-strategist/internal/contact"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
	"github.com/ajharbinger/lunai-strategist/pkg/config"
)

// Services contains all application services
type Services struct {
	Strategist      *StrategistService
	Contact         *ContactService
	Auth            AuthService
	Export          *LeadExportService
	Retry           *RelayRetryWorker
	JWT             *auth.JWTService
	RelayConfigured bool
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	ValidateToken(token string) (*auth.Claims, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

// Dependencies are the collaborators NewServices wires together
type Dependencies struct {
	Repos   *repository.Repositories
	Catalog catalog.Provider
	Relay   contact.Relay
	Config  *config.Config
	Logger  logger.Logger
	Meter   metric.MeterProvider
}

// NewServices creates a new Services instance with all dependencies
func NewServices(deps Dependencies) *Services {
	if deps.Meter == nil {
		deps.Meter = otel.GetMeterProvider()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.NewStaticProvider()
	}

	cfg := deps.Config
	relay := deps.Relay
	if relay == nil {
		relay = contact.NewEmailJSClient(EmailJSConfig(cfg))
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	contactService := NewContactService(
		deps.Repos.Lead,
		relay,
		contact.NewRelayLimiter(cfg.RelayPerMinute),
		contact.NewHealthMonitor(),
		cfg.ContactToEmail,
		deps.Logger.With("service", "contact"),
		deps.Meter,
	)

	return &Services{
		Strategist:      NewStrategistService(deps.Catalog, deps.Repos.Session, deps.Logger.With("service", "strategist"), deps.Meter),
		Contact:         contactService,
		Auth:            NewAuthService(deps.Repos.User, deps.Repos.Tx, jwtService, deps.Logger.With("service", "auth")),
		Export:          NewLeadExportService(deps.Repos.Lead),
		Retry:           NewRelayRetryWorker(deps.Repos.Lead, contactService, deps.Logger.With("service", "relay_retry")),
		JWT:             jwtService,
		RelayConfigured: cfg.HasEmailJSCredentials(),
	}
}

// EmailJSConfig maps application config onto relay settings
func EmailJSConfig(cfg *config.Config) contact.EmailJSConfig {
	return contact.EmailJSConfig{
		Endpoint:   cfg.EmailJSEndpoint,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
	}
}

// RetryConfigFrom reads retry worker settings, keeping defaults for unset values
func RetryConfigFrom(cfg *config.Config) RetryConfig {
	rc := DefaultRetryConfig()
	if cfg.RetryInterval > 0 {
		rc.Interval = cfg.RetryInterval
	}
	if cfg.RetryBatchSize > 0 {
		rc.BatchSize = cfg.RetryBatchSize
	}
	if cfg.RetryMaxAge > 0 {
		rc.MaxAge = cfg.RetryMaxAge
	}
	return rc
}
