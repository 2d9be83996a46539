package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/docker/go-units"
	"github.com/pelletier/go-toml/v2"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `toml:"host"`
	Port               string `toml:"port"`
	User               string `toml:"user"`
	Password           string `toml:"password"`
	Name               string `toml:"name"`
	SSLMode            string `toml:"sslmode"`
	MaxOpenConns       int    `toml:"max_open_conns"`
	MaxIdleConns       int    `toml:"max_idle_conns"`
	ConnMaxLifetimeSec int    `toml:"conn_max_lifetime_sec"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
}

// StorageConfig selects the storage driver and the public location of stored files.
type StorageConfig struct {
	// Driver is either "local" or "minio".
	Driver string `toml:"driver"`
	// BasePath is the root directory used by the local driver.
	BasePath string `toml:"base_path"`
	// PublicBaseURL is prepended to the namespace and filename when building file URLs.
	PublicBaseURL string `toml:"public_base_url"`
	// MaxUploadSize is a human readable size such as "10MB".
	MaxUploadSize string `toml:"max_upload_size"`

	maxUploadSizeVal int64
}

// MaxUploadSizeBytes returns the parsed upload limit. It is zero until Finalize succeeds.
func (c *StorageConfig) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from an optional TOML file and environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppEnv   string         `toml:"app_env"`
	Timezone string         `toml:"timezone"`
	AppHost  string         `toml:"app_host"`
	Port     string         `toml:"port"`
	LogLevel string         `toml:"log_level"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	MinIO    MinIOConfig    `toml:"minio"`
	Auth     AuthConfig     `toml:"auth"`
}

// IsProduction reports whether internal error details must be hidden from clients.
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location returns the time zone used for log timestamps, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
// Invalid values fall back to their defaults; use LoadFile to get validation errors.
func Load() *AppConfig {
	cfg := defaults()
	cfg.applyEnv()
	if err := cfg.Finalize(); err != nil {
		cfg.Storage.MaxUploadSize = defaultMaxUploadSize
		_ = cfg.Finalize()
	}
	return cfg
}

// LoadFile reads the TOML file at path (if any) on top of the defaults and then
// applies environment overrides, so the environment always wins.
func LoadFile(path string) (*AppConfig, error) {
	cfg := defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the configuration and caches derived values.
func (c *AppConfig) Finalize() error {
	switch c.Storage.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("invalid storage driver %q (must be local or minio)", c.Storage.Driver)
	}

	size, err := units.FromHumanSize(c.Storage.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.Storage.maxUploadSizeVal = size

	return nil
}

const defaultMaxUploadSize = "10MB"

func defaults() *AppConfig {
	return &AppConfig{
		AppEnv:   "development",
		Timezone: "UTC",
		AppHost:  "localhost:8080",
		Port:     "8080", // default only for non-sensitive value
		LogLevel: "info",
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
		},
		Storage: StorageConfig{
			Driver:        "local",
			BasePath:      "public",
			MaxUploadSize: defaultMaxUploadSize,
		},
	}
}

func (c *AppConfig) applyEnv() {
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.Timezone = getEnv("APP_TIMEZONE", c.Timezone)
	c.AppHost = getEnv("APP_HOST", c.AppHost)
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", c.Database.ConnMaxLifetimeSec)

	c.Storage.Driver = getEnv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.BasePath = getEnv("STORAGE_BASE_PATH", c.Storage.BasePath)
	c.Storage.PublicBaseURL = getEnv("PUBLIC_BASE_URL", c.Storage.PublicBaseURL)
	c.Storage.MaxUploadSize = getEnv("MAX_UPLOAD_SIZE", c.Storage.MaxUploadSize)

	c.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", c.MinIO.Endpoint)
	c.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", c.MinIO.AccessKey)
	c.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", c.MinIO.SecretKey)
	c.MinIO.Bucket = getEnv("MINIO_BUCKET", c.MinIO.Bucket)
	c.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", c.MinIO.UseSSL)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
