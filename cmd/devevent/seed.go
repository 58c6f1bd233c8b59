package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"devevent/internal/domain"
	"devevent/internal/schema"
	"devevent/internal/services"
)

//go:embed seed_events.json
var seedEventsJSON []byte

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the featured sample events",
	Long:  `Insert the bundled sample events through the event service. Events whose slug already exists are skipped.`,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	store, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	featured := openFeaturedCache(ctx, cfg, logger)
	defer featured.Close()

	events, err := loadSeedEvents(seedEventsJSON)
	if err != nil {
		return err
	}
	svc := services.NewEventService(store.events, featured, logger, cfg.SlugMaxAttempts, cfg.ContextTimeout)
	created, skipped, err := seedEvents(ctx, svc, events, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d events, skipped %d existing\n", created, skipped)
	return nil
}

func loadSeedEvents(raw []byte) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("decode seed events: %w", err)
	}
	return events, nil
}

// seedEvents creates each event unless one with the same derived slug exists.
// The event service would otherwise store a suffixed copy.
func seedEvents(ctx context.Context, svc domain.EventService, events []*domain.Event, logger *slog.Logger) (created, skipped int, err error) {
	for _, ev := range events {
		slug := schema.Slugify(ev.Title)
		_, err := svc.GetEventBySlug(ctx, slug)
		switch {
		case err == nil:
			logger.Info("seed event exists", "slug", slug)
			skipped++
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return created, skipped, fmt.Errorf("look up %q: %w", slug, err)
		}

		if err := svc.CreateEvent(ctx, ev); err != nil {
			if errors.Is(err, domain.ErrDuplicateSlug) {
				skipped++
				continue
			}
			return created, skipped, fmt.Errorf("seed %q: %w", ev.Title, err)
		}
		logger.Info("seeded event", "slug", ev.Slug)
		created++
	}
	return created, skipped, nil
}
