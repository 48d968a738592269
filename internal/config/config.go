package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Filter strategy names accepted by PROXIMITY_FILTER.
const (
	FilterMemory   = "memory"
	FilterPushdown = "pushdown"
)

type Config struct {
	Port string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	// ProximityFilter selects the strategy: "pushdown" evaluates the
	// haversine predicate in Postgres, "memory" fetches all rows and
	// filters in-process.
	ProximityFilter string

	// RedisAddr enables the aggregated-result cache when non-empty.
	RedisAddr      string
	RedisPassword  string
	ResultCacheTTL time.Duration
}

func Load() (Config, error) {
	// A missing .env file is fine in containerized deployments.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		ProximityFilter:  getEnv("PROXIMITY_FILTER", FilterPushdown),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.PostgresHost == "" || cfg.PostgresUser == "" || cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB are required")
	}

	if cfg.ProximityFilter != FilterMemory && cfg.ProximityFilter != FilterPushdown {
		return Config{}, fmt.Errorf("invalid PROXIMITY_FILTER %q: must be %q or %q", cfg.ProximityFilter, FilterMemory, FilterPushdown)
	}

	if ttl := os.Getenv("RESULT_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RESULT_CACHE_TTL: %w", err)
		}
		cfg.ResultCacheTTL = d
	}

	return cfg, nil
}

// ConnString builds the Postgres connection URL.
func (c Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
