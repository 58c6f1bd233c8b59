package domain

import (
	"context"
	"time"
)

// Event field names used by the write pipeline to track which fields changed.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldOverview    = "overview"
	FieldImage       = "image"
	FieldVenue       = "venue"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldMode        = "mode"
	FieldAudience    = "audience"
	FieldAgenda      = "agenda"
	FieldOrganizer   = "organizer"
	FieldTags        = "tags"
)

// Event is a listed developer event. Slug is its public identity.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy so pipeline stages never share slices with their input.
func (e Event) Clone() Event {
	out := e
	if e.Agenda != nil {
		out.Agenda = append([]string(nil), e.Agenda...)
	}
	if e.Tags != nil {
		out.Tags = append([]string(nil), e.Tags...)
	}
	return out
}

// EventCard is the read-only projection rendered by event listings.
// swagger:model EventCard
type EventCard struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// Card projects the event onto the listing fields.
func (e *Event) Card() EventCard {
	return EventCard{
		Title:    e.Title,
		Image:    e.Image,
		Slug:     e.Slug,
		Location: e.Location,
		Date:     e.Date,
		Time:     e.Time,
	}
}

// EventPatch holds optional updates to an event. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Overview    *string   `json:"overview"`
	Image       *string   `json:"image"`
	Venue       *string   `json:"venue"`
	Location    *string   `json:"location"`
	Date        *string   `json:"date"`
	Time        *string   `json:"time"`
	Mode        *string   `json:"mode"`
	Audience    *string   `json:"audience"`
	Agenda      *[]string `json:"agenda"`
	Organizer   *string   `json:"organizer"`
	Tags        *[]string `json:"tags"`
}

// Apply copies the set fields onto e and returns the names of the fields it touched.
func (p EventPatch) Apply(e *Event) map[string]bool {
	changed := make(map[string]bool)
	setString := func(field string, dst *string, src *string) {
		if src != nil && *src != *dst {
			*dst = *src
			changed[field] = true
		}
	}
	setString(FieldTitle, &e.Title, p.Title)
	setString(FieldDescription, &e.Description, p.Description)
	setString(FieldOverview, &e.Overview, p.Overview)
	setString(FieldImage, &e.Image, p.Image)
	setString(FieldVenue, &e.Venue, p.Venue)
	setString(FieldLocation, &e.Location, p.Location)
	setString(FieldDate, &e.Date, p.Date)
	setString(FieldTime, &e.Time, p.Time)
	setString(FieldMode, &e.Mode, p.Mode)
	setString(FieldAudience, &e.Audience, p.Audience)
	setString(FieldOrganizer, &e.Organizer, p.Organizer)
	if p.Agenda != nil {
		e.Agenda = append([]string(nil), (*p.Agenda)...)
		changed[FieldAgenda] = true
	}
	if p.Tags != nil {
		e.Tags = append([]string(nil), (*p.Tags)...)
		changed[FieldTags] = true
	}
	return changed
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, p PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
	// ListByTags returns events sharing at least one tag, excluding excludeID, newest first.
	ListByTags(ctx context.Context, tags []string, excludeID string, limit int) ([]*Event, error)
	EnsureIndexes(ctx context.Context) error
}

// FeaturedCache stores the rendered featured listing between writes.
type FeaturedCache interface {
	GetFeatured(ctx context.Context, limit int) ([]EventCard, bool)
	SetFeatured(ctx context.Context, limit int, cards []EventCard)
	Invalidate(ctx context.Context)
}

// EventService defines the event listing and authoring operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	UpdateEvent(ctx context.Context, slug string, patch EventPatch) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	ListFeaturedEvents(ctx context.Context, limit int) ([]EventCard, error)
	SimilarEvents(ctx context.Context, slug string, limit int) ([]EventCard, error)
}
