package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"devevent/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository enforcing slug uniqueness.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error // if set, Create returns this error
	existsErr error
	creates   int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) slugOwner(slug string) (string, bool) {
	for id, e := range f.byID {
		if e.Slug == slug {
			return id, true
		}
	}
	return "", false
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if _, taken := f.slugOwner(e.Slug); taken {
		return domain.ErrDuplicateSlug
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	stored := e.Clone()
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if owner, taken := f.slugOwner(e.Slug); taken && owner != e.ID {
		return domain.ErrDuplicateSlug
	}
	stored := e.Clone()
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		out := e.Clone()
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if id, ok := f.slugOwner(slug); ok {
		return f.GetByID(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeEventRepo) sorted() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		c := e.Clone()
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeEventRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, error) {
	all := f.sorted()
	start := p.Offset()
	if start > len(all) {
		return []*domain.Event{}, nil
	}
	end := len(all)
	if p.PageSize > 0 && start+p.PageSize < end {
		end = start + p.PageSize
	}
	return all[start:end], nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeEventRepo) ListByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]*domain.Event, error) {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	out := []*domain.Event{}
	for _, e := range f.sorted() {
		if e.ID == excludeID {
			continue
		}
		for _, t := range e.Tags {
			if want[t] {
				out = append(out, e)
				break
			}
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEventRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeFeaturedCache records invalidations and serves whatever was last set.
type fakeFeaturedCache struct {
	cards       map[int][]domain.EventCard
	invalidated int
}

func newFakeFeaturedCache() *fakeFeaturedCache {
	return &fakeFeaturedCache{cards: make(map[int][]domain.EventCard)}
}

func (f *fakeFeaturedCache) GetFeatured(ctx context.Context, limit int) ([]domain.EventCard, bool) {
	c, ok := f.cards[limit]
	return c, ok
}

func (f *fakeFeaturedCache) SetFeatured(ctx context.Context, limit int, cards []domain.EventCard) {
	f.cards[limit] = cards
}

func (f *fakeFeaturedCache) Invalidate(ctx context.Context) {
	f.invalidated++
	f.cards = make(map[int][]domain.EventCard)
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	bookings  []*domain.Booking
	nextID    int
	createErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	b.ID = fmt.Sprintf("bk-%d", f.nextID)
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	out, _ := f.ListByEventID(ctx, eventID)
	return len(out), nil
}

func (f *fakeBookingRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeEmailService captures confirmation requests.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
