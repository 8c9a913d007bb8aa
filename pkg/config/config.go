package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DatabaseURL  string
	EmbeddedPath string
	JWTSecret    string
	Port         string
	Environment  string
	LogLevel     string
	CatalogFile  string

	// Admin bootstrap account
	AdminEmail    string
	AdminPassword string

	// EmailJS relay
	EmailJSEndpoint   string
	EmailJSPublicKey  string
	EmailJSPrivateKey string
	EmailJSServiceID  string
	EmailJSTemplateID string
	ContactToEmail    string
	RelayPerMinute    int

	// Relay retry worker
	EnableRelayRetry bool
	RetryInterval    time.Duration
	RetryBatchSize   int
	RetryMaxAge      time.Duration

	// Security configuration
	AllowedOrigins  string
	TrustedProxies  string
	EnableRateLimit bool
	RequestsPerMin  int
	MaxRequestSize  int64
}

const placeholderKey = "YOUR_PUBLIC_KEY_HERE"

// New creates a new configuration instance from environment variables and,
// when present, a config file named by CONFIG_FILE.
func New() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("EMBEDDED_DB_PATH", ":memory:")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send")
	v.SetDefault("EMAILJS_PUBLIC_KEY", placeholderKey)
	v.SetDefault("EMAILJS_PRIVATE_KEY", "")
	v.SetDefault("EMAILJS_SERVICE_ID", "")
	v.SetDefault("EMAILJS_TEMPLATE_ID", "")
	v.SetDefault("CONTACT_TO_EMAIL", "")
	v.SetDefault("RELAY_PER_MINUTE", 3)
	v.SetDefault("ENABLE_RELAY_RETRY", true)
	v.SetDefault("RELAY_RETRY_INTERVAL", "5m")
	v.SetDefault("RELAY_RETRY_BATCH_SIZE", 3)
	v.SetDefault("RELAY_RETRY_MAX_AGE", "72h")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("ENABLE_RATE_LIMIT", true)
	v.SetDefault("REQUESTS_PER_MINUTE", 100)
	v.SetDefault("MAX_REQUEST_SIZE", 1024*1024) // 1MB default
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		EmbeddedPath:      v.GetString("EMBEDDED_DB_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Port:              v.GetString("PORT"),
		Environment:       v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		CatalogFile:       v.GetString("CATALOG_FILE"),
		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		EmailJSEndpoint:   v.GetString("EMAILJS_ENDPOINT"),
		EmailJSPublicKey:  v.GetString("EMAILJS_PUBLIC_KEY"),
		EmailJSPrivateKey: v.GetString("EMAILJS_PRIVATE_KEY"),
		EmailJSServiceID:  v.GetString("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: v.GetString("EMAILJS_TEMPLATE_ID"),
		ContactToEmail:    v.GetString("CONTACT_TO_EMAIL"),
		RelayPerMinute:    v.GetInt("RELAY_PER_MINUTE"),
		EnableRelayRetry:  v.GetBool("ENABLE_RELAY_RETRY"),
		RetryInterval:     v.GetDuration("RELAY_RETRY_INTERVAL"),
		RetryBatchSize:    v.GetInt("RELAY_RETRY_BATCH_SIZE"),
		RetryMaxAge:       v.GetDuration("RELAY_RETRY_MAX_AGE"),
		AllowedOrigins:    v.GetString("ALLOWED_ORIGINS"),
		TrustedProxies:    v.GetString("TRUSTED_PROXIES"),
		EnableRateLimit:   v.GetBool("ENABLE_RATE_LIMIT"),
		RequestsPerMin:    v.GetInt("REQUESTS_PER_MINUTE"),
		MaxRequestSize:    v.GetInt64("MAX_REQUEST_SIZE"),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesPostgres reports whether leads are stored in Postgres rather than the embedded store
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// HasEmailJSCredentials returns true once the EmailJS placeholders have been replaced
func (c *Config) HasEmailJSCredentials() bool {
	return c.EmailJSPublicKey != "" && c.EmailJSPublicKey != placeholderKey &&
		c.EmailJSServiceID != "" && c.EmailJSTemplateID != ""
}

// HasAdminCredentials reports whether an admin bootstrap account is configured
func (c *Config) HasAdminCredentials() bool {
	return c.AdminEmail != "" || c.AdminPassword != ""
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// GetTrustedProxies returns a slice of trusted proxy IPs
func (c *Config) GetTrustedProxies() []string {
	if c.TrustedProxies == "" {
		return []string{} // No trusted proxies by default
	}
	return strings.Split(c.TrustedProxies, ",")
}

// Validate checks settings that must be present outside development
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.HasAdminCredentials() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ADMIN_EMAIL or ADMIN_PASSWORD is set")
	}
	if c.RelayPerMinute <= 0 {
		return fmt.Errorf("RELAY_PER_MINUTE must be positive, got %d", c.RelayPerMinute)
	}
	if c.EnableRelayRetry && c.RetryInterval <= 0 {
		return fmt.Errorf("RELAY_RETRY_INTERVAL must be positive, got %s", c.RetryInterval)
	}
	return nil
}
