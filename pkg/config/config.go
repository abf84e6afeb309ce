package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/clinicdesk/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Sheets      SheetsConfig
	Redis       RedisConfig
	Auth        AuthConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// SheetsConfig holds the Google Sheets backing-store configuration.
// PrivateKey is the service account key in PEM form; escaped newlines
// from .env files are unescaped at load time.
type SheetsConfig struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
	SheetName     string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig holds admin authentication configuration.
// AdminPasswordHash is a bcrypt hash, never a plaintext password.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTL          time.Duration
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnv("GOOGLE_SHEET_ID", ""),
			ClientEmail:   getEnv("GOOGLE_CLIENT_EMAIL", ""),
			PrivateKey:    strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
			SheetName:     getEnv("GOOGLE_SHEET_NAME", "Appointments"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:         getEnv("JWT_SECRET", ""),
			TokenTTL:          time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", 1440)) * time.Minute,
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "clinicdesk-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// Validate checks that the settings the process cannot run without are present.
// Missing settings are configuration errors, distinct from connectivity errors
// raised later when the backing store is actually called.
func (c *Config) Validate() error {
	if err := c.Sheets.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// Validate checks the Google Sheets credential triple.
func (c *SheetsConfig) Validate() error {
	if c.SpreadsheetID == "" {
		return apperrors.NewConfigurationError("GOOGLE_SHEET_ID is not set")
	}
	if c.ClientEmail == "" {
		return apperrors.NewConfigurationError("GOOGLE_CLIENT_EMAIL is not set")
	}
	if c.PrivateKey == "" {
		return apperrors.NewConfigurationError("GOOGLE_PRIVATE_KEY is not set")
	}
	if !strings.Contains(c.PrivateKey, "PRIVATE KEY") {
		return apperrors.NewConfigurationError("GOOGLE_PRIVATE_KEY is not a PEM-encoded private key")
	}
	return nil
}

// Validate checks the admin credential settings.
func (c *AuthConfig) Validate() error {
	if c.AdminEmail == "" {
		return apperrors.NewConfigurationError("ADMIN_EMAIL is not set")
	}
	if !strings.HasPrefix(c.AdminPasswordHash, "$2") {
		return apperrors.NewConfigurationError("ADMIN_PASSWORD_HASH must be a bcrypt hash")
	}
	if c.JWTSecret == "" {
		return apperrors.NewConfigurationError("JWT_SECRET is not set")
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
