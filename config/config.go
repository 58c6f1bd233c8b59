package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingConnectionString is returned when the selected database driver has no connection string.
var ErrMissingConnectionString = errors.New("missing database connection string")

// Supported database drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	LogLevel       string
	ContextTimeout time.Duration
	AllowedOrigins []string

	DBDriver      string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string

	SlugMaxAttempts int

	JWTSecret             string
	OrganizerPasswordHash string
	TokenExpiry           time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	FeaturedCacheTTL time.Duration

	EmailProvider    string
	EmailFromAddress string
	EmailFromName    string
	AWSRegion        string
	AWSAccessKeyID   string
	AWSSecretKey     string
}

// Load loads configuration from environment variables.
// Outside production it first loads a .env file when one exists.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env != "production" {
		// a missing .env is fine; the process environment still applies
		_ = godotenv.Load()
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults and validating the connection string.
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}
	cfg := &Config{
		Environment:    r.str("GO_ENV", "development"),
		Port:           r.str("PORT", "8080"),
		LogLevel:       r.str("LOG_LEVEL", "info"),
		ContextTimeout: r.duration("CONTEXT_TIMEOUT", 5*time.Second),
		AllowedOrigins: r.list("ALLOWED_ORIGINS"),

		DBDriver:      strings.ToLower(r.str("DB_DRIVER", DriverMongo)),
		MongoURI:      r.str("MONGODB_URI", ""),
		MongoDatabase: r.str("MONGODB_DATABASE", "devevent"),
		PostgresURL:   r.str("DATABASE_URL", ""),

		SlugMaxAttempts: r.integer("SLUG_MAX_ATTEMPTS", 5),

		JWTSecret:             r.str("JWT_SECRET", ""),
		OrganizerPasswordHash: r.str("ORGANIZER_PASSWORD_HASH", ""),
		TokenExpiry:           r.duration("TOKEN_EXPIRY", 24*time.Hour),

		RedisAddr:        r.str("REDIS_ADDR", ""),
		RedisPassword:    r.str("REDIS_PASSWORD", ""),
		RedisDB:          r.integer("REDIS_DB", 0),
		FeaturedCacheTTL: r.duration("FEATURED_CACHE_TTL", time.Minute),

		EmailProvider:    r.str("EMAIL_PROVIDER", "noop"),
		EmailFromAddress: r.str("EMAIL_FROM_ADDRESS", ""),
		EmailFromName:    r.str("EMAIL_FROM_NAME", "DevEvent"),
		AWSRegion:        r.str("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:   r.str("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:     r.str("AWS_SECRET_ACCESS_KEY", ""),
	}
	if cfg.OrganizerPasswordHash != "" && cfg.JWTSecret == "" {
		// tokens signed with an empty key would be forgeable
		r.errs = append(r.errs, errors.New("JWT_SECRET is required when ORGANIZER_PASSWORD_HASH is set"))
	}
	if len(r.errs) > 0 {
		return nil, errors.Join(r.errs...)
	}

	switch cfg.DBDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("%w: MONGODB_URI is not set", ErrMissingConnectionString)
		}
	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL is not set", ErrMissingConnectionString)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// ConnectionString returns the connection string for the selected driver.
func (c *Config) ConnectionString() string {
	if c.DBDriver == DriverPostgres {
		return c.PostgresURL
	}
	return c.MongoURI
}

// reader collects parse errors so every bad key is reported at once.
type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) integer(key string, def int) int {
	s := r.str(key, "")
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	s := r.str(key, "")
	if s == "" {
		return def
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return v
}

func (r *reader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
