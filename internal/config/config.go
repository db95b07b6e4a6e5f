package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level
	ServiceName string

	Database   DatabaseConfig
	RedisURL   string
	JWT        JWTConfig
	Cookie     CookieConfig
	CORS       CORSConfig
	Storage    StorageConfig
	Places     PlacesConfig
	ReviewSync ReviewSyncConfig
	Events     EventsConfig
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from
// the individual DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type CookieConfig struct {
	MaxAge time.Duration
	Secure bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StorageConfig struct {
	ProjectID     string
	BucketName    string
	KeyfileBase64 string
}

// Enabled reports whether object storage credentials are configured.
func (s StorageConfig) Enabled() bool {
	return s.BucketName != "" && s.KeyfileBase64 != ""
}

type PlacesConfig struct {
	APIKey  string
	PlaceID string
	BaseURL string
	Timeout time.Duration
}

type ReviewSyncConfig struct {
	Enabled    bool
	Schedule   string
	Timezone   string
	CacheTTL   time.Duration
	RetryCount int
	RetryDelay time.Duration
}

type EventsConfig struct {
	KafkaBrokers []string
	TopicPrefix  string
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	environment := getenv("ENVIRONMENT", EnvDevelopment)
	cfg := &Config{
		Port:        getenv("PORT", "9000"),
		Environment: environment,
		LogLevel:    parseLevel(getenv("LOG_LEVEL", "info")),
		ServiceName: getenv("SERVICE_NAME", "admin-service"),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getenv("DB_HOST", "localhost"),
			Port:            getenv("DB_PORT", "5432"),
			User:            getenv("DB_USER", "postgres"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            getenv("DB_NAME", "aps_admin"),
			SSLMode:         getenv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		RedisURL: os.Getenv("REDIS_URL"),
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET"),
			ExpiresIn: getenvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		},
		Cookie: CookieConfig{
			MaxAge: getenvDuration("COOKIE_MAX_AGE", 7*24*time.Hour),
			Secure: environment == EnvProduction,
		},
		CORS: CORSConfig{
			AllowedOrigins: getenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"}),
		},
		Storage: StorageConfig{
			ProjectID:     os.Getenv("GCP_PROJECT_ID"),
			BucketName:    os.Getenv("GCP_BUCKET_NAME"),
			KeyfileBase64: os.Getenv("GCP_KEYFILE_BASE64"),
		},
		Places: PlacesConfig{
			APIKey:  os.Getenv("GOOGLE_API_KEY"),
			PlaceID: os.Getenv("GOOGLE_PLACE_ID"),
			BaseURL: getenv("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1"),
			Timeout: getenvDuration("GOOGLE_PLACES_TIMEOUT", 10*time.Second),
		},
		ReviewSync: ReviewSyncConfig{
			Enabled:    getenvBool("REVIEW_SYNC_ENABLED", true),
			Schedule:   getenv("REVIEW_SYNC_CRON", "0 0 * * *"),
			Timezone:   getenv("REVIEW_SYNC_TIMEZONE", "Asia/Kolkata"),
			CacheTTL:   getenvDuration("REVIEW_CACHE_TTL", 24*time.Hour),
			RetryCount: getenvInt("REVIEW_SYNC_RETRIES", 3),
			RetryDelay: getenvDuration("REVIEW_SYNC_RETRY_DELAY", 2*time.Second),
		},
		Events: EventsConfig{
			KafkaBrokers: getenvList("KAFKA_BROKERS", nil),
			TopicPrefix:  getenv("EVENTS_TOPIC_PREFIX", "aps"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var problems []string

	if c.JWT.Secret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		problems = append(problems, "JWT_EXPIRES_IN must be positive")
	}
	if c.Database.URL == "" && c.Database.Host == "" {
		problems = append(problems, "DATABASE_URL or DB_HOST is required")
	}
	if c.RedisURL != "" {
		if _, err := url.Parse(c.RedisURL); err != nil {
			problems = append(problems, "REDIS_URL is not a valid URL")
		}
	}
	if c.ReviewSync.Enabled {
		if _, err := time.LoadLocation(c.ReviewSync.Timezone); err != nil {
			problems = append(problems, fmt.Sprintf("REVIEW_SYNC_TIMEZONE %q is not a valid timezone", c.ReviewSync.Timezone))
		}
		if c.ReviewSync.RetryCount < 1 {
			problems = append(problems, "REVIEW_SYNC_RETRIES must be at least 1")
		}
	}
	if c.IsProduction() && c.Storage.BucketName != "" && c.Storage.KeyfileBase64 == "" {
		problems = append(problems, "GCP_KEYFILE_BASE64 is required when GCP_BUCKET_NAME is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getenvDuration accepts Go durations ("90m") and whole days ("7d").
func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := parseDuration(v); err == nil {
		return d
	}
	return fallback
}

func parseDuration(v string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, err
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func getenvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
