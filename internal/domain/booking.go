package domain

import (
	"context"
	"time"
)

// Booking field names tracked by the write pipeline.
const (
	FieldEventID = "event_id"
	FieldEmail   = "email"
)

// Booking is an email address's reservation for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBooking returns a Booking for the given event and email. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventExistenceChecker answers whether an event with the given identity is stored.
type EventExistenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	EnsureIndexes(ctx context.Context) error
}

// BookingService defines the booking operations exposed to visitors and organizers.
type BookingService interface {
	// CreateBooking books email onto the event identified by slug.
	CreateBooking(ctx context.Context, slug, email string) (*Booking, error)
	ListBookings(ctx context.Context, slug string) ([]*Booking, error)
	CountBookings(ctx context.Context, slug string) (int, error)
}
