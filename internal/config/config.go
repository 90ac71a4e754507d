package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the server reads from the environment. Redis and
// NATS are optional: without them the service runs uncached with an
// in-process event bus.
type Config struct {
	Port int

	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBDatabase string

	RedisAddr   string
	CacheTTL    time.Duration
	NATSURL     string
	CORSOrigins []string
	GinRelease  bool
}

// Load reads configuration from the environment. Database settings are
// required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       8080,
		CacheTTL:   5 * time.Minute,
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		NATSURL:    os.Getenv("NATS_URL"),
		GinRelease: os.Getenv("GIN_MODE") == "release",
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", raw, err)
		}
		cfg.Port = port
	}

	if raw := os.Getenv("CACHE_TTL_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS %q: %w", raw, err)
		}
		cfg.CacheTTL = time.Duration(secs) * time.Second
	}

	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, trimmed)
			}
		}
	}

	required := map[string]*string{
		"DB_HOST":     &cfg.DBHost,
		"DB_PORT":     &cfg.DBPort,
		"DB_USERNAME": &cfg.DBUsername,
		"DB_PASSWORD": &cfg.DBPassword,
		"DB_DATABASE": &cfg.DBDatabase,
	}
	for name, target := range required {
		value := os.Getenv(name)
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
		*target = value
	}

	return cfg, nil
}

// DatabaseURL builds the postgres connection string, encoding credentials so
// special characters survive.
func (c *Config) DatabaseURL() string {
	userInfo := url.UserPassword(c.DBUsername, c.DBPassword)
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s?sslmode=disable",
		userInfo.String(),
		c.DBHost,
		c.DBPort,
		url.PathEscape(c.DBDatabase),
	)
}
