package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       Redis

	// DuplicateWindow is how far back the duplicate-phone check looks.
	DuplicateWindow time.Duration
	// UrgentPathMarker is the entry answer that always forces the
	// priority flag.
	UrgentPathMarker string
	// PriceBands and UsageBands list band identifiers lowest first.
	PriceBands []string
	UsageBands []string
	// DefinitionCacheTTL bounds how stale a cached form definition may be.
	DefinitionCacheTTL time.Duration
}

// Redis captures the optional cache backend. An empty URL disables it.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main
// stays lean.
func FromEnv() Server {
	return Server{
		Addr:        envOr("PULSEFORM_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		DuplicateWindow:    envDuration("DUPLICATE_WINDOW", 24*time.Hour),
		UrgentPathMarker:   envOr("URGENT_PATH_MARKER", "PATH_D"),
		PriceBands:         envList("PRICE_BANDS", []string{"lt_5000", "5000_10000", "10000_15000", "gt_15000"}),
		UsageBands:         envList("USAGE_BANDS", []string{"lt_10gb", "10_25gb", "25_50gb", "gt_50gb"}),
		DefinitionCacheTTL: envDuration("DEFINITION_CACHE_TTL", 5*time.Minute),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
