// Package config loads service configuration from the environment and
// optional env files through Viper. Environment variables win over the files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the service configuration.
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	DB    DBConfig
	JWT   JWTConfig
	Audit AuditConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// IsDevelopment reports whether the service runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DBConfig holds PostgreSQL pool settings.
type DBConfig struct {
	DatabaseURL     string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// JWTConfig holds settings for validating tokens on edit routes.
type JWTConfig struct {
	Secret string
	Issuer string
}

// AuditConfig holds quantity-edit audit settings.
type AuditConfig struct {
	// CompressThreshold is the change payload size (bytes) above which
	// payloads are stored zstd-compressed.
	CompressThreshold int
}

var (
	// ErrMissingDatabaseURL is returned when DATABASE_URL is not configured.
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

	// ErrDefaultJWTSecret is returned outside development when JWT_SECRET
	// is left at its placeholder.
	ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set outside development")
)

const defaultJWTSecret = "change-me"

// configFiles are merged in order.
var configFiles = []string{".env", "config/config.env"}

// Load merges .env and config/config.env (both optional, the latter wins on
// conflicts) and then the environment, which wins over both files.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	for _, file := range configFiles {
		v.SetConfigFile(file)
		if err := v.MergeInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Host:            v.GetString("HTTP_HOST"),
			Port:            v.GetInt("HTTP_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("HTTP_IDLE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("HTTP_SHUTDOWN_TIMEOUT"),
		},
		DB: DBConfig{
			DatabaseURL:     v.GetString("DATABASE_URL"),
			MaxConns:        v.GetInt32("DB_MAX_CONNS"),
			MinConns:        v.GetInt32("DB_MIN_CONNS"),
			MaxConnLifetime: v.GetDuration("DB_MAX_CONN_LIFETIME"),
			MaxConnIdleTime: v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		Audit: AuditConfig{
			CompressThreshold: v.GetInt("AUDIT_COMPRESS_THRESHOLD"),
		},
	}

	if cfg.DB.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWT.Secret == defaultJWTSecret && !cfg.App.IsDevelopment() {
		return nil, ErrDefaultJWTSecret
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("HTTP_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("HTTP_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("HTTP_IDLE_TIMEOUT", 60*time.Second)
	v.SetDefault("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second)

	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_CONN_LIFETIME", time.Hour)
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", 30*time.Minute)

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "offerstock")

	v.SetDefault("AUDIT_COMPRESS_THRESHOLD", 10*1024)
}
