package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Settings SettingsConfig
	Session  SessionConfig
	Export   ExportConfig
	Accounts AccountsConfig
	App      AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// DatabaseConfig is optional; an empty DSN disables export history.
type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SettingsConfig struct {
	Backend           string // "file" or "redis"
	PresetsFile       string
	AdminSettingsFile string
}

type SessionConfig struct {
	Backend     string // "memory" or "redis"
	IdleTimeout time.Duration
}

type ExportConfig struct {
	RetentionDays int
	RatePerMinute int
}

// AccountsConfig carries the secrets of the three static accounts.
type AccountsConfig struct {
	AdminPassword   string
	Client1Password string
	Client2Password string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Settings: SettingsConfig{
			Backend:           getEnv("SETTINGS_BACKEND", "file"),
			PresetsFile:       getEnv("PRESETS_FILE", "branding_presets.json"),
			AdminSettingsFile: getEnv("ADMIN_SETTINGS_FILE", "admin_settings.json"),
		},
		Session: SessionConfig{
			Backend:     getEnv("SESSION_BACKEND", "memory"),
			IdleTimeout: getEnvAsDuration("SESSION_IDLE_TIMEOUT", 15*time.Minute),
		},
		Export: ExportConfig{
			RetentionDays: getEnvAsInt("EXPORT_RETENTION_DAYS", 90),
			RatePerMinute: getEnvAsInt("EXPORT_RATE_PER_MINUTE", 30),
		},
		Accounts: AccountsConfig{
			AdminPassword:   getEnv("ADMIN_PASSWORD", ""),
			Client1Password: getEnv("CLIENT1_PASSWORD", ""),
			Client2Password: getEnv("CLIENT2_PASSWORD", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Settings.Backend {
	case "file":
		if c.Settings.PresetsFile == "" || c.Settings.AdminSettingsFile == "" {
			return fmt.Errorf("PRESETS_FILE and ADMIN_SETTINGS_FILE are required for the file backend")
		}
	case "redis":
	default:
		return fmt.Errorf("SETTINGS_BACKEND must be file or redis, got %q", c.Settings.Backend)
	}

	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory or redis, got %q", c.Session.Backend)
	}

	if (c.Settings.Backend == "redis" || c.Session.Backend == "redis") && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when a redis backend is selected")
	}

	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}

	if c.Accounts.AdminPassword == "" || c.Accounts.Client1Password == "" || c.Accounts.Client2Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD, CLIENT1_PASSWORD and CLIENT2_PASSWORD are required")
	}

	if c.Export.RatePerMinute <= 0 {
		return fmt.Errorf("EXPORT_RATE_PER_MINUTE must be positive")
	}

	return nil
}

// UsesRedis reports whether any backend needs a Redis client.
func (c *Config) UsesRedis() bool {
	return c.Settings.Backend == "redis" || c.Session.Backend == "redis"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
