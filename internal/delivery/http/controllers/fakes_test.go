package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err         error
	event       *domain.Event
	events      []*domain.Event
	total       int
	cards       []domain.EventCard
	lastSlug    string
	lastPatch   domain.EventPatch
	lastParams  domain.PaginationParams
	lastLimit   int
	lastCreated *domain.Event
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-created"
	event.Slug = "created-slug"
	return nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, slug string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastSlug, f.lastPatch = slug, patch
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastParams = p
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.events, f.total, nil
}

func (f *fakeEventService) ListFeaturedEvents(ctx context.Context, limit int) ([]domain.EventCard, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.cards, nil
}

func (f *fakeEventService) SimilarEvents(ctx context.Context, slug string, limit int) ([]domain.EventCard, error) {
	f.lastSlug, f.lastLimit = slug, limit
	if f.err != nil {
		return nil, f.err
	}
	return f.cards, nil
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	err       error
	bookings  []*domain.Booking
	lastSlug  string
	lastEmail string
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, slug, email string) (*domain.Booking, error) {
	f.lastSlug, f.lastEmail = slug, email
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: "bk-1", EventID: "ev-1", Email: email}, nil
}

func (f *fakeBookingService) ListBookings(ctx context.Context, slug string) ([]*domain.Booking, error) {
	f.lastSlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

func (f *fakeBookingService) CountBookings(ctx context.Context, slug string) (int, error) {
	f.lastSlug = slug
	if f.err != nil {
		return 0, f.err
	}
	return len(f.bookings), nil
}

// decodeEnvelope decodes the response envelope and, when data is non-nil, its data field into data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Meta  json.RawMessage   `json:"meta"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw), "response must be valid JSON envelope")
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	var meta helpers.PaginationMeta
	if len(raw.Meta) > 0 {
		require.NoError(t, json.Unmarshal(raw.Meta, &meta))
		return helpers.APIResponse{Data: data, Meta: meta, Error: raw.Error}
	}
	return helpers.APIResponse{Data: data, Error: raw.Error}
}
