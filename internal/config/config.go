package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Backend     BackendConfig
	Audit       AuditConfig
	Session     SessionConfig
	Email       EmailConfig
	Maintenance MaintenanceConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
}

// BackendConfig points the gateway at the remote matrimony admin API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuditConfig controls the local Postgres audit trail.
type AuditConfig struct {
	Enabled           bool
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	SSLMode           string
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

// SessionConfig selects where console sessions live. Store is "memory" or
// "redis"; redis is required when running more than one gateway replica.
type SessionConfig struct {
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// EmailConfig configures SES delivery of maintenance summaries. Disabled
// when ReportTo is empty.
type EmailConfig struct {
	AWSRegion   string
	FromAddress string
	ReportTo    string
}

// MaintenanceConfig schedules the automatic maintenance trigger. An empty
// Schedule disables it; manual runs stay available either way. Scheduled
// runs authenticate with ServiceToken since no operator is attached.
type MaintenanceConfig struct {
	Schedule     string
	ServiceToken string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	backendURL := getEnv("BACKEND_BASE_URL", "")
	if backendURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if _, err := url.ParseRequestURI(backendURL); err != nil {
		return nil, fmt.Errorf("BACKEND_BASE_URL is not a valid URL: %w", err)
	}

	env := getEnv("ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: parseCommaList(getEnv("TRUSTED_PROXIES", "")),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(backendURL, "/"),
			Timeout: getEnvAsDuration("BACKEND_TIMEOUT", 10*time.Second),
		},
		Audit: AuditConfig{
			Enabled:           getEnvAsBool("AUDIT_ENABLED", true),
			Host:              getEnv("AUDIT_DB_HOST", "localhost"),
			Port:              getEnvAsInt("AUDIT_DB_PORT", 5432),
			User:              getEnv("AUDIT_DB_USER", "postgres"),
			Password:          getEnv("AUDIT_DB_PASSWORD", ""),
			Name:              getEnv("AUDIT_DB_NAME", "admin_gateway"),
			SSLMode:           getEnv("AUDIT_DB_SSLMODE", "disable"),
			MaxConns:          int32(getEnvAsInt("AUDIT_DB_MAX_CONNS", 10)),
			MinConns:          int32(getEnvAsInt("AUDIT_DB_MIN_CONNS", 2)),
			MaxConnLifetime:   getEnvAsDuration("AUDIT_DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvAsDuration("AUDIT_DB_MAX_CONN_IDLE_TIME", 1*time.Minute),
			HealthCheckPeriod: getEnvAsDuration("AUDIT_DB_HEALTH_CHECK_PERIOD", 1*time.Minute),
		},
		Session: SessionConfig{
			Store:         getEnv("SESSION_STORE", "memory"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			TTL:           getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		},
		Email: EmailConfig{
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
			ReportTo:    getEnv("MAINTENANCE_REPORT_TO", ""),
		},
		Maintenance: MaintenanceConfig{
			Schedule:     getEnv("MAINTENANCE_SCHEDULE", ""),
			ServiceToken: getEnv("MAINTENANCE_SERVICE_TOKEN", ""),
		},
	}

	if cfg.Audit.Enabled && cfg.Audit.Password == "" {
		return nil, fmt.Errorf("AUDIT_DB_PASSWORD is required when the audit trail is enabled")
	}

	if cfg.Session.Store != "memory" && cfg.Session.Store != "redis" {
		return nil, fmt.Errorf("SESSION_STORE must be \"memory\" or \"redis\" (got %q)", cfg.Session.Store)
	}

	if cfg.Email.ReportTo != "" && cfg.Email.FromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when MAINTENANCE_REPORT_TO is set")
	}

	if cfg.Maintenance.Schedule != "" && cfg.Maintenance.ServiceToken == "" {
		return nil, fmt.Errorf("MAINTENANCE_SERVICE_TOKEN is required when MAINTENANCE_SCHEDULE is set")
	}

	return cfg, nil
}

func (c *AuditConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseCommaList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return parseCommaList(getEnv("ALLOWED_ORIGINS", ""))
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
