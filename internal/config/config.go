package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Payment      PaymentConfig      `yaml:"payment"`
	DeviceSearch DeviceSearchConfig `yaml:"device_search"`
	JWT          JWTConfig          `yaml:"jwt"`
	Pricing      PricingConfig      `yaml:"pricing"`
	SendGrid     SendGridConfig     `yaml:"sendgrid"`
	Log          LogConfig          `yaml:"log"`
	Session      SessionConfig      `yaml:"session"`
	Checkout     CheckoutConfig     `yaml:"checkout"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// PaymentConfig contains payment collaborator settings
type PaymentConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DeviceSearchConfig contains device search collaborator settings
type DeviceSearchConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// JWTConfig contains access token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// PricingConfig selects the duration-to-price calculator
type PricingConfig struct {
	Policy string `yaml:"policy"` // "day_rate_with_surcharge" or "hour_rate"
}

// SendGridConfig contains receipt email settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SessionConfig contains session lifecycle settings
type SessionConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// CheckoutConfig contains checkout context lifecycle settings
type CheckoutConfig struct {
	IdleTTLMinutes int `yaml:"idle_ttl_minutes"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepIdleCheckouts   string `yaml:"sweep_idle_checkouts"`
	SweepExpiredSessions string `yaml:"sweep_expired_sessions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Collaborators
	if val := os.Getenv("PAYMENT_BASE_URL"); val != "" {
		c.Payment.BaseURL = val
	}
	if val := os.Getenv("DEVICE_SEARCH_BASE_URL"); val != "" {
		c.DeviceSearch.BaseURL = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Collaborator validation
	if c.Payment.BaseURL == "" {
		return fmt.Errorf("payment base URL is required")
	}
	if c.DeviceSearch.BaseURL == "" {
		return fmt.Errorf("device search base URL is required")
	}
	if c.Payment.TimeoutSeconds <= 0 {
		c.Payment.TimeoutSeconds = 10
	}
	if c.DeviceSearch.TimeoutSeconds <= 0 {
		c.DeviceSearch.TimeoutSeconds = 10
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Pricing defaults; NewPolicy rejects unknown names at startup
	if c.Pricing.Policy == "" {
		c.Pricing.Policy = "day_rate_with_surcharge"
	}

	// Lifecycle defaults
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 120
	}
	if c.Checkout.IdleTTLMinutes <= 0 {
		c.Checkout.IdleTTLMinutes = 240
	}

	// Scheduler defaults
	if c.Scheduler.SweepIdleCheckouts == "" {
		c.Scheduler.SweepIdleCheckouts = "0 */30 * * * *" // every 30 minutes
	}
	if c.Scheduler.SweepExpiredSessions == "" {
		c.Scheduler.SweepExpiredSessions = "0 */15 * * * *" // every 15 minutes
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// PaymentTimeout returns the payment client timeout as a duration
func (c *Config) PaymentTimeout() time.Duration {
	return time.Duration(c.Payment.TimeoutSeconds) * time.Second
}

// DeviceSearchTimeout returns the device search client timeout as a duration
func (c *Config) DeviceSearchTimeout() time.Duration {
	return time.Duration(c.DeviceSearch.TimeoutSeconds) * time.Second
}

// SessionTTL returns the session time-to-live as a duration
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// CheckoutIdleTTL returns the checkout context idle time-to-live
func (c *Config) CheckoutIdleTTL() time.Duration {
	return time.Duration(c.Checkout.IdleTTLMinutes) * time.Minute
}

// AccessTokenExpiry returns the access token lifetime as a duration
func (c *Config) AccessTokenExpiry() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}
