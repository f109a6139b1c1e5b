package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// Every field is populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	MinIO    MinIOConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Store    StoreConfig
	CORS     CORSConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production, test
	Port        string
	Version     string
	BaseURL     string // used to build links in notifications
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns a libpq style connection URL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type EmailConfig struct {
	Provider string // smtp, sendgrid
	APIKey   string
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
}

type MinIOConfig struct {
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// =====================================================
// PHOTO STORAGE
// =====================================================

type StorageConfig struct {
	Driver       string // minio, local
	LocalRoot    string // directory for the local driver
	LocalBaseURL string // public prefix for local files
	MaxPhotoSize int64  // bytes
}

type CacheConfig struct {
	ListTTL time.Duration
}

// StoreConfig is the shop on/off switch for cart routes
type StoreConfig struct {
	Open          bool
	ClosedMessage string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type QueueConfig struct {
	Concurrency               int
	NotificationRetentionDays int
	// FanOutTimeout bounds each in-process notification handler
	FanOutTimeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Academy API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "academy"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24), // 1 day
		},
		Email: EmailConfig{
			Provider: getEnv("EMAIL_PROVIDER", "smtp"),
			APIKey:   getEnv("EMAIL_API_KEY", ""),
			From:     getEnv("EMAIL_FROM", "noreply@academy.local"),
			FromName: getEnv("EMAIL_FROM_NAME", "Academy"),
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "academy"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Storage: StorageConfig{
			Driver:       getEnv("STORAGE_DRIVER", "minio"),
			LocalRoot:    getEnv("STORAGE_LOCAL_ROOT", "./storage/public"),
			LocalBaseURL: getEnv("STORAGE_LOCAL_BASE_URL", "/storage"),
			MaxPhotoSize: int64(getEnvInt("STORAGE_MAX_PHOTO_KB", 2048)) * 1024,
		},
		Cache: CacheConfig{
			ListTTL: getEnvDuration("CACHE_LIST_TTL", time.Hour),
		},
		Store: StoreConfig{
			Open:          getEnvBool("STORE_OPEN", true),
			ClosedMessage: getEnv("STORE_CLOSED_MESSAGE", "The store is closed"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Queue: QueueConfig{
			Concurrency:               getEnvInt("QUEUE_CONCURRENCY", 10),
			NotificationRetentionDays: getEnvInt("NOTIFICATION_RETENTION_DAYS", 30),
			FanOutTimeout:             getEnvDuration("FANOUT_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks driver names and production secrets
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "minio", "local":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected minio or local)", c.Storage.Driver)
	}

	switch c.Email.Provider {
	case "smtp", "sendgrid":
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q (expected smtp or sendgrid)", c.Email.Provider)
	}

	if c.Storage.MaxPhotoSize <= 0 {
		return fmt.Errorf("STORAGE_MAX_PHOTO_KB must be positive")
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Email.Provider == "sendgrid" && c.Email.APIKey == "" {
			return fmt.Errorf("EMAIL_API_KEY must be set when EMAIL_PROVIDER=sendgrid")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
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
	return out
}
