// internal/config/config.go

package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/arbeit-tech/billing-service/internal/logger"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	SequenceStore = "store"
	SequenceRedis = "redis"
)

// Config holds the process configuration loaded from the environment.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StoreDriver string
	PostgresCfg PostgresConfig

	SequenceBackend string
	RedisCfg        RedisConfig

	PDFDir string
	S3Cfg  S3Config

	BrandName    string
	BrandContact string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// PostgresConfig holds connection settings. DSN overrides the other fields.
type PostgresConfig struct {
	DSN      string
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
	SSLMode  string
}

// RedisConfig holds settings for the redis sequencer.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// S3Config enables the artifact mirror when Bucket is set.
type S3Config struct {
	Bucket string
	Region string
	Prefix string
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	config := &Config{
		HTTPAddr:    getEnvOrDefault("HTTP_ADDR", ":5000"),
		StoreDriver: getEnvOrDefault("STORE_DRIVER", StoreMemory),
		PostgresCfg: PostgresConfig{
			DSN:      getEnvOrDefault("POSTGRES_DSN", ""),
			DBname:   getEnvOrDefault("POSTGRES_DB", "billing"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		SequenceBackend: getEnvOrDefault("SEQUENCE_BACKEND", SequenceStore),
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		},
		PDFDir: getEnvOrDefault("PDF_DIR", "pdfs"),
		S3Cfg: S3Config{
			Bucket: getEnvOrDefault("S3_BUCKET", ""),
			Region: getEnvOrDefault("S3_REGION", "ap-south-1"),
			Prefix: getEnvOrDefault("S3_PREFIX", ""),
		},
		BrandName:     getEnvOrDefault("BRAND_NAME", ""),
		BrandContact:  getEnvOrDefault("BRAND_CONTACT", ""),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "console"),
		LogTimeFormat: getEnvOrDefault("LOG_TIME_FORMAT", time.RFC3339),
		LogOutput:     getEnvOrDefault("LOG_OUTPUT", "stdout"),
	}

	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: REDIS_DB: %w", err)
	}
	config.RedisCfg.DB = db

	timeout, err := time.ParseDuration(getEnvOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: SHUTDOWN_TIMEOUT: %w", err)
	}
	config.ShutdownTimeout = timeout

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StorePostgres, c.StoreDriver)
	}
	switch c.SequenceBackend {
	case SequenceStore, SequenceRedis:
	default:
		return fmt.Errorf("SEQUENCE_BACKEND must be %q or %q, got %q", SequenceStore, SequenceRedis, c.SequenceBackend)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.PDFDir == "" {
		return fmt.Errorf("PDF_DIR is required")
	}
	if c.S3Cfg.Bucket != "" && c.S3Cfg.Region == "" {
		return fmt.Errorf("S3_REGION is required when S3_BUCKET is set")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// ConnString returns DSN when set, otherwise a URL built from the parts.
func (p PostgresConfig) ConnString() string {
	if p.DSN != "" {
		return p.DSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.Username, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DBname,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
