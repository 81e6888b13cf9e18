// Package config loads EventEase settings from defaults, an optional YAML
// file and EVENTEASE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "EVENTEASE_"

// Store drivers.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// KV drivers.
const (
	KVRedis  = "redis"
	KVMemory = "memory"
)

// Config is the top-level configuration, corresponding to eventease.yml.
type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Store     StoreConfig     `koanf:"store"`
	KV        KVConfig        `koanf:"kv"`
	Session   SessionConfig   `koanf:"session"`
	Payment   PaymentConfig   `koanf:"payment"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Catalog   CatalogConfig   `koanf:"catalog"`
}

// HTTPConfig configures the demo API server.
type HTTPConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	// Store selects the backing collections for the demo API. The demo API
	// is process-memory backed unless told otherwise.
	Store string `koanf:"store"`
	// StaticDir is served at the root when set.
	StaticDir string `koanf:"static_dir"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Driver     string         `koanf:"driver"`
	SQLitePath string         `koanf:"sqlite_path"`
	Postgres   PostgresConfig `koanf:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// KVConfig selects and configures the key-value blob space.
type KVConfig struct {
	Driver        string `koanf:"driver"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// SessionConfig controls short-lived, session-scoped records.
type SessionConfig struct {
	PendingBookingTTL time.Duration `koanf:"pending_booking_ttl"`
}

// PaymentConfig controls the payment simulation.
type PaymentConfig struct {
	Delay time.Duration `koanf:"delay"`
}

// RateLimitConfig is the per-client token bucket on the demo API.
type RateLimitConfig struct {
	RPS     float64       `koanf:"rps"`
	Burst   int           `koanf:"burst"`
	IdleTTL time.Duration `koanf:"idle_ttl"`
}

// CatalogConfig controls catalog seeding.
type CatalogConfig struct {
	SeedOnStart bool `koanf:"seed_on_start"`
}

// DefaultConfig returns local-development defaults. The postgres section
// keeps honouring the DB_* variables used by earlier deployments.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:         3000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
			Store:        StoreMemory,
		},
		Store: StoreConfig{
			Driver:     StoreSQLite,
			SQLitePath: "eventease.db",
			Postgres: PostgresConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnv("DB_PORT", "5432"),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				DBName:   getEnv("DB_NAME", "eventease"),
				SSLMode:  getEnv("DB_SSLMODE", "disable"),
			},
		},
		KV: KVConfig{
			Driver:    KVMemory,
			RedisAddr: "127.0.0.1:6379",
		},
		Session: SessionConfig{PendingBookingTTL: 30 * time.Minute},
		Payment: PaymentConfig{Delay: 2 * time.Second},
		RateLimit: RateLimitConfig{
			RPS:     20,
			Burst:   40,
			IdleTTL: 5 * time.Minute,
		},
		Catalog: CatalogConfig{SeedOnStart: true},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. EVENTEASE_STORE__DRIVER maps to
// store.driver; PORT overrides http.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.HTTP.Port = p
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

var validStores = map[string]bool{
	StoreSQLite:   true,
	StorePostgres: true,
	StoreMemory:   true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if !validStores[c.Store.Driver] {
		return fmt.Errorf("invalid store.driver %q: must be one of sqlite, postgres, memory", c.Store.Driver)
	}
	if !validStores[c.HTTP.Store] {
		return fmt.Errorf("invalid http.store %q: must be one of sqlite, postgres, memory", c.HTTP.Store)
	}
	if c.Store.Driver == StoreSQLite && strings.TrimSpace(c.Store.SQLitePath) == "" {
		return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
	}
	if c.KV.Driver != KVRedis && c.KV.Driver != KVMemory {
		return fmt.Errorf("invalid kv.driver %q: must be one of redis, memory", c.KV.Driver)
	}
	if c.KV.Driver == KVRedis && c.KV.RedisAddr == "" {
		return fmt.Errorf("kv.redis_addr is required for the redis driver")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	if c.Session.PendingBookingTTL < 0 {
		return fmt.Errorf("session.pending_booking_ttl must be non-negative")
	}
	if c.Payment.Delay < 0 {
		return fmt.Errorf("payment.delay must be non-negative")
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("ratelimit values must be non-negative")
	}
	return nil
}
