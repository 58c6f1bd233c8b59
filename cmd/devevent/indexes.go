package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensure storage indexes",
	Long:  `Create the unique slug index on events and the event_id index on bookings if they are missing.`,
	RunE:  runIndexes,
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

// indexer is satisfied by every repository that owns indexes.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func runIndexes(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	if err := ensureIndexes(cmd.Context(), map[string]indexer{
		"events":   store.events,
		"bookings": store.bookings,
	}); err != nil {
		return err
	}
	logger.Info("indexes ensured", "driver", cfg.DBDriver)
	return nil
}

func ensureIndexes(ctx context.Context, repos map[string]indexer) error {
	for _, name := range []string{"events", "bookings"} {
		repo, ok := repos[name]
		if !ok {
			continue
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}
