// Package config reads runtime settings from flags, each defaulting to an
// environment variable.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/stripe/stripe-go/v79"
)

const (
	defaultPort       = 8080
	defaultLogLevel   = "info"
	defaultSessionTTL = 24 * time.Hour
	defaultWorkers    = 10
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port     int
	LogLevel string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string
	NATSURL     string
	OTELHost    string

	SessionTTL time.Duration
	Currency   stripe.Currency
	Workers    int
}

// Load parses args (without the program name). getenv supplies flag
// defaults; pass os.Getenv in production.
func Load(args []string, getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}

	cfg := &Config{}
	var currency string

	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", env.lookupInt("PORT", defaultPort), "HTTP listen port")
	fs.StringVar(&cfg.LogLevel, "log-level", env.lookup("LOG_LEVEL", defaultLogLevel), "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", env.lookup("REDIS_ADDR", ""), "Redis address for session carts; empty keeps carts in memory")
	fs.StringVar(&cfg.RedisPassword, "redis-password", env.lookup("REDIS_PASSWORD", ""), "Redis password")
	fs.IntVar(&cfg.RedisDB, "redis-db", env.lookupInt("REDIS_DB", 0), "Redis database number")
	fs.StringVar(&cfg.DatabaseURL, "database-url", env.lookup("DATABASE_URL", ""), "Postgres DSN for the catalog; empty uses the embedded catalog")
	fs.StringVar(&cfg.NATSURL, "nats-url", env.lookup("NATS_URL", ""), "NATS URL for cart events; empty processes events in-process")
	fs.StringVar(&cfg.OTELHost, "otel-host", env.lookup("OTEL_HOST", ""), "OTLP gRPC collector endpoint; empty disables export")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", env.lookupDuration("SESSION_TTL", defaultSessionTTL), "session cart lifetime")
	fs.StringVar(&currency, "currency", env.lookup("CURRENCY", string(stripe.CurrencyUSD)), "ISO currency code of catalog prices")
	fs.IntVar(&cfg.Workers, "workers", env.lookupInt("WORKERS", defaultWorkers), "event worker count")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}
	if env.err != nil {
		return nil, env.err
	}

	cfg.Currency = stripe.Currency(strings.ToLower(strings.TrimSpace(currency)))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Port < 1 || c.Port > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	case c.SessionTTL <= 0:
		return fmt.Errorf("%w: session ttl must be positive", ErrInvalidConfig)
	case len(c.Currency) != 3:
		return fmt.Errorf("%w: currency %q is not an ISO code", ErrInvalidConfig, c.Currency)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	case c.RedisDB < 0:
		return fmt.Errorf("%w: redis db must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// envReader remembers the first malformed variable so Load can report it.
type envReader struct {
	getenv func(string) string
	err    error
}

func (r *envReader) lookup(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) lookupInt(key string, fallback int) int {
	v := r.lookup(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v)
		return fallback
	}
	return n
}

func (r *envReader) lookupDuration(key string, fallback time.Duration) time.Duration {
	v := r.lookup(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v)
		return fallback
	}
	return d
}

func (r *envReader) fail(key, value string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
	}
}
