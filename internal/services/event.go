package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevent/internal/domain"
	"devevent/internal/schema"
)

// DefaultSlugAttempts bounds the numeric suffixes tried when a derived slug is taken.
const DefaultSlugAttempts = 5

type eventService struct {
	eventRepo      domain.EventRepository
	featured       domain.FeaturedCache
	logger         *slog.Logger
	slugAttempts   int
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(eventRepo domain.EventRepository,
	featured domain.FeaturedCache,
	logger *slog.Logger,
	slugAttempts int,
	timeout time.Duration,
) domain.EventService {
	if slugAttempts < 1 {
		slugAttempts = DefaultSlugAttempts
	}
	return &eventService{
		eventRepo:      eventRepo,
		featured:       featured,
		logger:         logger,
		slugAttempts:   slugAttempts,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// slugCandidate returns base for the first attempt and base-N afterwards.
func slugCandidate(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// writeWithSlug runs write with base, base-2, base-3... until the slug is free
// or the attempts run out.
func (s *eventService) writeWithSlug(ev *domain.Event, write func(*domain.Event) error) error {
	base := ev.Slug
	for attempt := 1; ; attempt++ {
		ev.Slug = slugCandidate(base, attempt)
		err := write(ev)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateSlug) {
			return err
		}
		if attempt >= s.slugAttempts {
			ev.Slug = base
			return domain.ErrDuplicateSlug
		}
		s.logger.Info("slug taken, retrying with suffix", "slug", ev.Slug, "attempt", attempt)
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	out, err := schema.Run(ctx, schema.NewCandidate(*event), schema.EventStages()...)
	if err != nil {
		return err
	}
	ev := out.Record
	now := s.now()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	err = s.writeWithSlug(&ev, func(e *domain.Event) error {
		return s.eventRepo.Create(ctx, e)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return err
		}
		return fmt.Errorf("create event: %w", err)
	}
	*event = ev
	s.featured.Invalidate(ctx)
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, slug string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stored, err := s.eventRepo.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	candidate := stored.Clone()
	changed := patch.Apply(&candidate)
	if len(changed) == 0 {
		return stored, nil
	}
	out, err := schema.Run(ctx, schema.ChangedCandidate(candidate, changed), schema.EventStages()...)
	if err != nil {
		return nil, err
	}
	ev := out.Record
	ev.UpdatedAt = s.now()

	update := func(e *domain.Event) error { return s.eventRepo.Update(ctx, e) }
	if ev.Slug != stored.Slug {
		err = s.writeWithSlug(&ev, update)
	} else {
		err = update(&ev)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.featured.Invalidate(ctx)
	return &ev, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

func cards(events []*domain.Event) []domain.EventCard {
	out := make([]domain.EventCard, 0, len(events))
	for _, e := range events {
		out = append(out, e.Card())
	}
	return out
}

func (s *eventService) ListFeaturedEvents(ctx context.Context, limit int) ([]domain.EventCard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if cached, ok := s.featured.GetFeatured(ctx, limit); ok {
		return cached, nil
	}
	events, err := s.eventRepo.List(ctx, domain.PaginationParams{Page: 1, PageSize: limit})
	if err != nil {
		return nil, fmt.Errorf("list featured events: %w", err)
	}
	result := cards(events)
	// A write landing between List and SetFeatured can leave this listing
	// stale in the cache; it lives at most one cache TTL.
	s.featured.SetFeatured(ctx, limit, result)
	return result, nil
}

func (s *eventService) SimilarEvents(ctx context.Context, slug string, limit int) ([]domain.EventCard, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, normalizeSlug(slug))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	similar, err := s.eventRepo.ListByTags(ctx, event.Tags, event.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return cards(similar), nil
}
