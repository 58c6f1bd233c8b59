package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"devevent/config"
	"devevent/internal/cache"
	"devevent/internal/connection"
	"devevent/internal/domain"
	"devevent/internal/repository/mongodb"
	"devevent/internal/repository/postgres"
)

// logLevel overrides LOG_LEVEL when set.
var logLevel string

var rootCmd = &cobra.Command{
	Use:           "devevent",
	Short:         "Developer event listings and bookings",
	Long:          `DevEvent serves the event catalogue and booking API and ships maintenance commands for its storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides LOG_LEVEL")
}

// bootstrap loads configuration and builds the logger shared by the commands.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingConnectionString) {
			return nil, nil, fmt.Errorf("database is not configured: %w", err)
		}
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// storage is the repository pair for the configured driver. The database is
// dialled lazily on the first repository call.
type storage struct {
	events   domain.EventRepository
	bookings domain.BookingRepository
	close    func(ctx context.Context) error
}

func openStorage(cfg *config.Config, logger *slog.Logger) (*storage, error) {
	dsn := cfg.ConnectionString()
	if dsn == "" {
		return nil, fmt.Errorf("%w for DB_DRIVER %q", config.ErrMissingConnectionString, cfg.DBDriver)
	}
	switch cfg.DBDriver {
	case config.DriverMongo:
		m := connection.NewManager("mongodb", mongodb.Connect(dsn, cfg.MongoDatabase), mongodb.Disconnect, logger)
		return &storage{
			events:   mongodb.NewEventRepository(m),
			bookings: mongodb.NewBookingRepository(m),
			close:    m.Close,
		}, nil
	case config.DriverPostgres:
		m := connection.NewManager("postgres", postgres.Connect(dsn), postgres.Close, logger)
		return &storage{
			events:   postgres.NewEventRepository(m),
			bookings: postgres.NewBookingRepository(m),
			close:    m.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// openFeaturedCache connects to Redis when configured. A failed connection
// degrades to a cache that always misses.
func openFeaturedCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) *cache.RedisCache {
	rc, err := cache.NewRedisCache(ctx, cache.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.FeaturedCacheTTL,
	}, logger)
	if err != nil {
		logger.Warn("featured cache unavailable, continuing without caching", "err", err)
		rc, _ = cache.NewRedisCache(ctx, cache.Config{}, logger)
	}
	logger.Info("featured cache", "enabled", rc.Enabled(), "ttl", cfg.FeaturedCacheTTL)
	return rc
}
