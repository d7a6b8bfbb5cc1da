package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	EnvProduction = "production"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port      string
	Host      string
	Env       string
	BodyLimit string
}

type DatabaseConfig struct {
	Driver         string
	SQLitePath     string
	URL            string
	MaxConns       int
	IdleTimeout    time.Duration
	ConnectTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level log.Lvl
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

var loadProdEnv = LoadProdEnv

// Load reads the process environment. Outside production a .env file is
// merged in first; in production the SSM parameters under SSM_PREFIX are
// exported before anything else is read.
func Load(ctx context.Context) (*Config, error) {
	if getEnv("GO_ENV", "development") == EnvProduction {
		region := getEnv("AWS_REGION", "us-east-2")
		prefix := getEnv("SSM_PREFIX", "/devjournal/prod/")
		if err := loadProdEnv(ctx, region, prefix); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*Config, error) {
	idle, err := time.ParseDuration(getEnv("DB_IDLE_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_IDLE_TIMEOUT: %w", err)
	}

	connect, err := time.ParseDuration(getEnv("DB_CONNECT_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	level, err := ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "3000"),
			Host:      getEnv("HOST", "0.0.0.0"),
			Env:       getEnv("GO_ENV", "development"),
			BodyLimit: getEnv("BODY_LIMIT", "1M"),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath:     getEnv("SQLITE_PATH", "database.db"),
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       getEnvAsInt("DB_MAX_CONNS", 20),
			IdleTimeout:    idle,
			ConnectTimeout: connect,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Logging: LoggingConfig{
			Level: level,
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=%s", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
