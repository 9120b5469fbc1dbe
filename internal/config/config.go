package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	SeedDemo    bool
	Environment string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

// StoreConfig selects and configures the dataset driver. "file" is the
// default; "postgres" needs DATABASE_URL; "memory" keeps nothing.
type StoreConfig struct {
	Driver      string
	Path        string
	DatabaseURL string
}

type AuthConfig struct {
	BcryptCost int
}

type CORSConfig struct {
	AllowAllOrigins bool
	AllowedOrigins  []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	environment := getEnv("ENVIRONMENT", "development")

	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 4000),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:4000"),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", "file"),
			Path:        getEnv("STORE_PATH", "data/db.json"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			BcryptCost: getEnvInt("AUTH_BCRYPT_COST", 12),
		},
		CORS: CORSConfig{
			AllowAllOrigins: environment == "development",
			AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		SeedDemo:    getEnvBool("SEED_DEMO_DATA", true),
		Environment: environment,
	}

	switch cfg.Store.Driver {
	case "file", "memory":
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q (want file, memory, or postgres)", cfg.Store.Driver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
