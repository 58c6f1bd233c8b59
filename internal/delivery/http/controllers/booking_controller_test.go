package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
		wantField  string
		wantMsg    string
	}{
		{name: "success", body: `{"email":"ada@example.com"}`, wantStatus: http.StatusCreated},
		{
			name:       "invalid email",
			body:       `{"email":"nope"}`,
			fakeErr:    domain.NewFieldError(domain.FieldEmail, "Please provide a valid email address"),
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
			wantField:  "email",
			wantMsg:    "Please provide a valid email address",
		},
		{
			name:       "unknown event",
			body:       `{"email":"ada@example.com"}`,
			fakeErr:    domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "reference vanished",
			body:       `{"email":"ada@example.com"}`,
			fakeErr:    domain.ErrEventNotFound,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
			wantField:  "event_id",
			wantMsg:    "Referenced event does not exist",
		},
		{
			name:       "reference check failed",
			body:       `{"email":"ada@example.com"}`,
			fakeErr:    errors.New("failed to validate event reference: timeout"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
		{
			name:       "event id in body rejected",
			body:       `{"email":"ada@example.com","event_id":"x"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
			wantMsg:    "unknown field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{err: tt.fakeErr}
			ctrl := NewBookingController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/go-day/bookings", bytes.NewBufferString(tt.body))
			req.SetPathValue("slug", "go-day")
			rr := httptest.NewRecorder()

			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var b domain.Booking
				envelope := decodeEnvelope(t, rr, &b)
				require.Nil(t, envelope.Error)
				assert.Equal(t, "bk-1", b.ID)
				assert.Equal(t, "go-day", fake.lastSlug)
				assert.Equal(t, "ada@example.com", fake.lastEmail)
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Equal(t, tt.wantField, envelope.Error.Field)
			assert.Contains(t, envelope.Error.Message, tt.wantMsg)
		})
	}
}

func TestBookingController_ListBookings(t *testing.T) {
	fake := &fakeBookingService{bookings: []*domain.Booking{
		{ID: "bk-2", EventID: "ev-1", Email: "bob@example.com"},
		{ID: "bk-1", EventID: "ev-1", Email: "ada@example.com"},
	}}
	ctrl := NewBookingController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/events/go-day/bookings", nil)
	req.SetPathValue("slug", "go-day")
	rr := httptest.NewRecorder()

	ctrl.ListBookings(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var list BookingList
	decodeEnvelope(t, rr, &list)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "bk-2", list.Bookings[0].ID)
}

func TestBookingController_CountBookings(t *testing.T) {
	tests := []struct {
		name       string
		fake       *fakeBookingService
		wantStatus int
		wantCount  int
		wantCode   string
	}{
		{
			name:       "success",
			fake:       &fakeBookingService{bookings: []*domain.Booking{{ID: "bk-1"}, {ID: "bk-2"}, {ID: "bk-3"}}},
			wantStatus: http.StatusOK,
			wantCount:  3,
		},
		{name: "no bookings", fake: &fakeBookingService{}, wantStatus: http.StatusOK},
		{
			name:       "unknown event",
			fake:       &fakeBookingService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "store failure",
			fake:       &fakeBookingService{err: errors.New("count bookings: timeout")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewBookingController(testLogger, tt.fake)
			req := httptest.NewRequest(http.MethodGet, "/events/go-day/bookings/count", nil)
			req.SetPathValue("slug", "go-day")
			rr := httptest.NewRecorder()

			ctrl.CountBookings(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "go-day", tt.fake.lastSlug)
			var body BookingCount
			envelope := decodeEnvelope(t, rr, &body)
			if tt.wantCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.Equal(t, tt.wantCount, body.Count)
		})
	}
}
