package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig encapsulates all runtime configuration knobs.
type AppConfig struct {
	App      AppSettings
	HTTP     HTTPSettings
	Auth     AuthSettings
	Log      LogSettings
	Database DatabaseSettings
	Szamlazz SzamlazzSettings
}

type AppSettings struct {
	Name        string
	Version     string
	Environment string
}

type HTTPSettings struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type AuthSettings struct {
	Enabled     bool
	IssuerURI   string
	JWKSetURI   string
	ClockSkew   time.Duration
	BypassPaths []string
}

type LogSettings struct {
	Level string
}

type DatabaseSettings struct {
	Host            string
	Port            int
	Database        string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SzamlazzSettings configures the Számlázz.hu Agent integration: the
// credential, endpoint, per-call timeout, taxpayer-lookup cache TTL and the
// provider's minor-currency-unit scale.
type SzamlazzSettings struct {
	BaseURL          string
	Key              string
	APITimeout       time.Duration
	TaxpayerCacheTTL time.Duration
	MinorUnitScale   int64
}

// AgentKey returns the configured Agent API key; empty when not set.
// Satisfies the credential-source ports of the workflow, the retrieval
// service and the provider clients.
func (s SzamlazzSettings) AgentKey() string {
	return s.Key
}

// Load resolves the application configuration from environment variables.
// It first attempts to load variables from a .env file if it exists.
// Environment variables set in the system take precedence over .env file
// values.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	cfg := AppConfig{
		App: AppSettings{
			Name:        getEnv("APP_NAME", "szamlabridge"),
			Version:     getEnv("APP_VERSION", "0.1.0"),
			Environment: getEnv("APP_ENV", "local"),
		},
		HTTP: HTTPSettings{
			Port:            getEnvAsInt("APP_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvAsDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Auth: AuthSettings{
			Enabled:     getEnvAsBool("AUTH_ENABLED", false),
			IssuerURI:   strings.TrimSpace(os.Getenv("JWT_ISSUER_URI")),
			JWKSetURI:   strings.TrimSpace(os.Getenv("JWT_JWK_SET_URI")),
			ClockSkew:   getEnvAsDuration("AUTH_CLOCK_SKEW", 2*time.Minute),
			BypassPaths: getEnvAsCSV("AUTH_BYPASS_PATHS", []string{"/health", "/events/order-created"}),
		},
		Log: LogSettings{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseSettings{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Database:        getEnv("DB_NAME", "szamlabridge"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Szamlazz: SzamlazzSettings{
			BaseURL:          getEnv("SZAMLAZZ_BASE_URL", "https://www.szamlazz.hu"),
			Key:              strings.TrimSpace(os.Getenv("SZAMLAZZ_AGENT_KEY")),
			APITimeout:       getEnvAsDuration("SZAMLAZZ_API_TIMEOUT", 30*time.Second),
			TaxpayerCacheTTL: getEnvAsDuration("SZAMLAZZ_TAXPAYER_CACHE_TTL", 1*time.Hour),
			MinorUnitScale:   int64(getEnvAsInt("INVOICE_MINOR_UNIT_SCALE", 100)),
		},
	}

	if cfg.Szamlazz.MinorUnitScale <= 0 {
		return cfg, errors.New("invalid config: INVOICE_MINOR_UNIT_SCALE must be greater than 0")
	}

	if cfg.Auth.Enabled {
		if cfg.Auth.IssuerURI == "" {
			return cfg, errors.New("invalid config: JWT_ISSUER_URI is required when AUTH_ENABLED=true")
		}
		if cfg.Auth.JWKSetURI == "" {
			return cfg, errors.New("invalid config: JWT_JWK_SET_URI is required when AUTH_ENABLED=true")
		}
	}

	return cfg, nil
}

// Address returns the HTTP listen address in host:port form.
func (h HTTPSettings) Address() string {
	return fmt.Sprintf(":%d", h.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsCSV(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}
