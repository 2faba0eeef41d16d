package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverBolt     = "bolt"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
}

type ServerConfig struct {
	Port               string
	StaticDir          string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Driver    string
	Path      string
	DSN       string
	MaxConns  int
	RedisAddr string
	RedisDB   int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	SecretKey   string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}
	// ENV_FILE is written by the deploy tool next to the site root
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	secret, err := secretKey()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8000"),
			StaticDir:          getEnv("STATIC_DIR", ""),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Driver:    getEnv("STORE_DRIVER", DriverSQLite),
			Path:      getEnv("DB_PATH", "database/db.sqlite3"),
			DSN:       getEnv("DB_DSN", ""),
			MaxConns:  getEnvAsInt("DB_MAX_CONNS", 10),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
			RedisDB:   getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", EnvDevelopment),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			SecretKey:   secret,
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

	switch c.App.Environment {
	case EnvDevelopment, EnvStaging, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV %q is not one of development, staging, production", c.App.Environment)
	}

	if c.App.Environment != EnvDevelopment && c.App.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY or SECRET_KEY_FILE is required in %s", c.App.Environment)
	}

	switch c.Database.Driver {
	case DriverMemory, DriverRedis:
	case DriverSQLite, DriverBolt:
		if c.Database.Path == "" {
			return fmt.Errorf("DB_PATH is required for the %s store", c.Database.Driver)
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}

	return nil
}

// IsDevelopment reports whether the app runs with development settings.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// secretKey prefers SECRET_KEY and falls back to the contents of SECRET_KEY_FILE.
func secretKey() (string, error) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		return v, nil
	}
	path := os.Getenv("SECRET_KEY_FILE")
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read SECRET_KEY_FILE: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
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
		log.Warnf("Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
