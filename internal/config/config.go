package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Content store configuration
	Content ContentConfig

	// Database configuration (postgres content store only)
	Database DatabaseConfig

	// Per-locale domain overrides
	Domains DomainConfig

	// Admin area configuration
	Admin AdminConfig

	// Publish pipeline configuration
	Publish PublishConfig

	// Contact form configuration
	Contact ContactConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// DeployEnv is "production", "preview" or "development".
	// Preview deployments block all crawling via robots.txt.
	DeployEnv string
}

// ContentConfig holds content store settings
type ContentConfig struct {
	// Provider is one of "fs", "memory" or "postgres"
	Provider string
	// Dir is the base directory of the fs provider, one subdirectory per locale
	Dir string
	// Watch enables the fsnotify watcher that invalidates the post cache
	// when content files change (development convenience)
	Watch bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// DomainConfig holds the per-locale domain table
type DomainConfig struct {
	EN string
	PT string
	ES string
	IT string
}

// AdminConfig holds admin feature settings
type AdminConfig struct {
	Enabled  bool
	APIToken string
}

// PublishConfig holds publish pipeline settings
type PublishConfig struct {
	// Provider is "store" (write through the content store) or "github"
	Provider string
	// Mode is "commit" or "pr" for the github provider
	Mode         string
	GithubOwner  string
	GithubRepo   string
	GithubToken  string
	GithubBranch string
}

// ContactConfig holds contact form settings
type ContactConfig struct {
	Provider  string
	FromEmail string
	ToEmail   string
}

// RateLimitConfig holds fixed-window rate limiter settings
type RateLimitConfig struct {
	PublishLimit int
	ContactLimit int
	Window       time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	deployEnv := getEnv("DEPLOY_ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			DeployEnv:       deployEnv,
		},
		Content: ContentConfig{
			Provider: getEnv("CONTENT_STORE_PROVIDER", "fs"),
			Dir:      getEnv("CONTENT_DIR", "./content/posts"),
			Watch:    getBoolEnv("CONTENT_WATCH", false),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "content_server"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Domains: DomainConfig{
			EN: getEnv("DOMAIN_EN", "techskillsthatpay.com"),
			PT: getEnv("DOMAIN_PT", "techskillsthatpay.com.br"),
			ES: getEnv("DOMAIN_ES", "techskillsthatpay.es"),
			IT: getEnv("DOMAIN_IT", "techskillsthatpay.it"),
		},
		Admin: AdminConfig{
			Enabled:  getBoolEnv("ADMIN_ENABLED", deployEnv != "production"),
			APIToken: getEnv("ADMIN_API_TOKEN", ""),
		},
		Publish: PublishConfig{
			Provider:     getEnv("PUBLISH_PROVIDER", "store"),
			Mode:         getEnv("PUBLISH_MODE", "commit"),
			GithubOwner:  getEnv("GITHUB_OWNER", ""),
			GithubRepo:   getEnv("GITHUB_REPO", ""),
			GithubToken:  getEnv("GITHUB_TOKEN", ""),
			GithubBranch: getEnv("GITHUB_BRANCH", "main"),
		},
		Contact: ContactConfig{
			Provider:  getEnv("CONTACT_PROVIDER", "mock"),
			FromEmail: getEnv("CONTACT_FROM_EMAIL", ""),
			ToEmail:   getEnv("CONTACT_TO_EMAIL", ""),
		},
		RateLimit: RateLimitConfig{
			PublishLimit: getIntEnv("PUBLISH_RATE_LIMIT", 3),
			ContactLimit: getIntEnv("CONTACT_RATE_LIMIT", 5),
			Window:       getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Content.Provider {
	case "fs", "memory", "postgres":
	default:
		return fmt.Errorf("CONTENT_STORE_PROVIDER must be one of: fs, memory, postgres")
	}
	switch c.Publish.Provider {
	case "store", "github":
	default:
		return fmt.Errorf("PUBLISH_PROVIDER must be one of: store, github")
	}
	if c.Publish.Provider == "github" && c.Publish.Mode != "commit" && c.Publish.Mode != "pr" {
		return fmt.Errorf("PUBLISH_MODE must be one of: commit, pr")
	}
	if c.Content.Provider == "postgres" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required for the postgres content store")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres content store")
		}
	}
	return nil
}

// IsPreview reports whether this is a preview deployment
func (c *ServerConfig) IsPreview() bool {
	return c.DeployEnv == "preview"
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
