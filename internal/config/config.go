package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Employees EmployeesAPIConfig
	Directory DirectoryConfig
	Uploads   UploadConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Port      string
	SignInURL string
}

// EmployeesAPIConfig points at the external recruitment API.
type EmployeesAPIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// DirectoryConfig tunes the employee directory views.
type DirectoryConfig struct {
	SearchDebounceMS   int
	ViewIdleTTLMinutes int
}

// UploadConfig bounds multipart bodies and how long parsed uploads wait for submit.
type UploadConfig struct {
	MaxBytes   string
	TTLMinutes int
}

// RedisConfig holds Redis connection values. An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds the audit database DSN. Empty disables the audit trail.
type PostgresConfig struct {
	DSN string
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Port:      getEnv("PORT", "8080"),
			SignInURL: getEnv("SIGN_IN_URL", "/sign-in"),
		},
		Employees: EmployeesAPIConfig{
			BaseURL:        strings.TrimRight(os.Getenv("EMPLOYEES_API_BASE_URL"), "/"),
			TimeoutSeconds: getEnvAsInt("EMPLOYEES_API_TIMEOUT_SECONDS", 15),
		},
		Directory: DirectoryConfig{
			SearchDebounceMS:   getEnvAsInt("SEARCH_DEBOUNCE_MS", 500),
			ViewIdleTTLMinutes: getEnvAsInt("VIEW_IDLE_TTL_MINUTES", 30),
		},
		Uploads: UploadConfig{
			MaxBytes:   getEnv("UPLOAD_MAX_BYTES", "10M"),
			TTLMinutes: getEnvAsInt("UPLOAD_TTL_MINUTES", 30),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks the settings the api command cannot run without.
func (c *Config) Validate() error {
	if c.Employees.BaseURL == "" {
		return fmt.Errorf("EMPLOYEES_API_BASE_URL is required")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return ":" + a.Port
}

func (e EmployeesAPIConfig) Timeout() time.Duration {
	if e.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(e.TimeoutSeconds) * time.Second
}

func (d DirectoryConfig) SearchDebounce() time.Duration {
	if d.SearchDebounceMS <= 0 {
		return 0
	}
	return time.Duration(d.SearchDebounceMS) * time.Millisecond
}

func (d DirectoryConfig) ViewIdleTTL() time.Duration {
	if d.ViewIdleTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(d.ViewIdleTTLMinutes) * time.Minute
}

func (u UploadConfig) TTL() time.Duration {
	if u.TTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(u.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
