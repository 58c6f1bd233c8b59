// Package schema holds the write pipeline applied to events and bookings
// before they are persisted: declarative field constraints first, then
// normalization and referential checks.
package schema

import (
	"context"
	"errors"
	"fmt"

	"devevent/internal/domain"
)

// Candidate is a record about to be written together with its write context.
type Candidate[T any] struct {
	Record  T
	IsNew   bool
	Changed map[string]bool
}

// NewCandidate wraps a record that has never been persisted.
func NewCandidate[T any](record T) Candidate[T] {
	return Candidate[T]{Record: record, IsNew: true}
}

// ChangedCandidate wraps a stored record whose listed fields were modified.
func ChangedCandidate[T any](record T, changed map[string]bool) Candidate[T] {
	return Candidate[T]{Record: record, Changed: changed}
}

// Modified reports whether field must be (re)processed: the record is new or the field changed.
func (c Candidate[T]) Modified(field string) bool {
	return c.IsNew || c.Changed[field]
}

// with returns a copy of c carrying record.
func (c Candidate[T]) with(record T) Candidate[T] {
	c.Record = record
	return c
}

// Stage transforms a candidate or rejects it.
type Stage[T any] func(ctx context.Context, c Candidate[T]) (Candidate[T], error)

// Run applies stages in order and stops at the first failure.
func Run[T any](ctx context.Context, c Candidate[T], stages ...Stage[T]) (Candidate[T], error) {
	for _, stage := range stages {
		next, err := stage(ctx, c)
		if err != nil {
			return c, err
		}
		c = next
	}
	return c, nil
}

// EventStages returns the ordered stages every event write goes through.
func EventStages() []Stage[domain.Event] {
	return []Stage[domain.Event]{
		EventConstraints,
		DeriveSlug,
		NormalizeDate,
		NormalizeTime,
	}
}

// BookingStages returns the ordered stages every booking write goes through.
func BookingStages(events domain.EventExistenceChecker) []Stage[domain.Booking] {
	return []Stage[domain.Booking]{
		BookingConstraints,
		CheckEventReference(events),
	}
}

// DeriveSlug sets the slug from the title when the title changed or the event is new.
func DeriveSlug(_ context.Context, c Candidate[domain.Event]) (Candidate[domain.Event], error) {
	if !c.Modified(domain.FieldTitle) {
		return c, nil
	}
	ev := c.Record.Clone()
	ev.Slug = Slugify(ev.Title)
	if ev.Slug == "" {
		return c, domain.NewFieldError(domain.FieldTitle, "Title must contain at least one letter or digit")
	}
	return c.with(ev), nil
}

// NormalizeDate rewrites the date to YYYY-MM-DD when it changed or the event is new.
func NormalizeDate(_ context.Context, c Candidate[domain.Event]) (Candidate[domain.Event], error) {
	if !c.Modified(domain.FieldDate) {
		return c, nil
	}
	date, err := CanonicalDate(c.Record.Date)
	if err != nil {
		return c, err
	}
	ev := c.Record.Clone()
	ev.Date = date
	return c.with(ev), nil
}

// NormalizeTime rewrites the time to 24-hour HH:MM when it changed or the event is new.
func NormalizeTime(_ context.Context, c Candidate[domain.Event]) (Candidate[domain.Event], error) {
	if !c.Modified(domain.FieldTime) {
		return c, nil
	}
	t, err := CanonicalTime(c.Record.Time)
	if err != nil {
		return c, err
	}
	ev := c.Record.Clone()
	ev.Time = t
	return c.with(ev), nil
}

// CheckEventReference rejects bookings whose event reference is new or changed
// and does not resolve to a stored event.
func CheckEventReference(events domain.EventExistenceChecker) Stage[domain.Booking] {
	return func(ctx context.Context, c Candidate[domain.Booking]) (Candidate[domain.Booking], error) {
		if !c.Modified(domain.FieldEventID) {
			return c, nil
		}
		exists, err := events.Exists(ctx, c.Record.EventID)
		if err != nil {
			return c, fmt.Errorf("failed to validate event reference: %w", err)
		}
		if !exists {
			return c, domain.ErrEventNotFound
		}
		return c, nil
	}
}

// IsRejection reports whether err came from the pipeline rejecting the record
// rather than from infrastructure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrMalformedDate) ||
		errors.Is(err, domain.ErrMalformedTime) ||
		errors.Is(err, domain.ErrEventNotFound)
}
