package schema

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"devevent/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailRegex.MatchString(fl.Field().String())
	})
}

// fieldRule declares how one field is cleaned and checked. Exactly one of str or list is set.
type fieldRule[T any] struct {
	field    string
	str      func(*T) *string
	list     func(*T) *[]string
	trim     bool
	lower    bool
	tag      string
	messages map[string]string
}

func (r fieldRule[T]) apply(rec *T) error {
	var value any
	if r.str != nil {
		s := r.str(rec)
		if r.trim {
			*s = strings.TrimSpace(*s)
		}
		if r.lower {
			*s = strings.ToLower(*s)
		}
		value = *s
	} else {
		value = *r.list(rec)
	}
	if r.tag == "" {
		return nil
	}
	err := validate.Var(value, r.tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := r.messages[verrs[0].Tag()]; ok {
			return domain.NewFieldError(r.field, "%s", msg)
		}
	}
	return domain.NewFieldError(r.field, "%s is invalid", r.field)
}

func required(label string) map[string]string {
	return map[string]string{"required": label + " is required"}
}

func requiredString(field, label string, ref func(*domain.Event) *string) fieldRule[domain.Event] {
	return fieldRule[domain.Event]{field: field, str: ref, trim: true, tag: "required", messages: required(label)}
}

func nonEmptyList(field, label, missing string, ref func(*domain.Event) *[]string) fieldRule[domain.Event] {
	return fieldRule[domain.Event]{
		field: field,
		list:  ref,
		tag:   "required,min=1",
		messages: map[string]string{
			"required": missing,
			"min":      label + " must contain at least one item",
		},
	}
}

var eventRules = []fieldRule[domain.Event]{
	requiredString(domain.FieldTitle, "Title", func(e *domain.Event) *string { return &e.Title }),
	{field: domain.FieldSlug, str: func(e *domain.Event) *string { return &e.Slug }, trim: true, lower: true},
	requiredString(domain.FieldDescription, "Description", func(e *domain.Event) *string { return &e.Description }),
	requiredString(domain.FieldOverview, "Overview", func(e *domain.Event) *string { return &e.Overview }),
	requiredString(domain.FieldImage, "Image", func(e *domain.Event) *string { return &e.Image }),
	requiredString(domain.FieldVenue, "Venue", func(e *domain.Event) *string { return &e.Venue }),
	requiredString(domain.FieldLocation, "Location", func(e *domain.Event) *string { return &e.Location }),
	{field: domain.FieldDate, str: func(e *domain.Event) *string { return &e.Date }, tag: "required", messages: required("Date")},
	{field: domain.FieldTime, str: func(e *domain.Event) *string { return &e.Time }, tag: "required", messages: required("Time")},
	requiredString(domain.FieldMode, "Mode", func(e *domain.Event) *string { return &e.Mode }),
	requiredString(domain.FieldAudience, "Audience", func(e *domain.Event) *string { return &e.Audience }),
	nonEmptyList(domain.FieldAgenda, "Agenda", "Agenda is required", func(e *domain.Event) *[]string { return &e.Agenda }),
	requiredString(domain.FieldOrganizer, "Organizer", func(e *domain.Event) *string { return &e.Organizer }),
	nonEmptyList(domain.FieldTags, "Tags", "Tags are required", func(e *domain.Event) *[]string { return &e.Tags }),
}

var bookingRules = []fieldRule[domain.Booking]{
	{
		field:    domain.FieldEventID,
		str:      func(b *domain.Booking) *string { return &b.EventID },
		trim:     true,
		tag:      "required",
		messages: required("Event ID"),
	},
	{
		field: domain.FieldEmail,
		str:   func(b *domain.Booking) *string { return &b.Email },
		trim:  true,
		lower: true,
		tag:   "required,simple_email",
		messages: map[string]string{
			"required":     "Email is required",
			"simple_email": "Please provide a valid email address",
		},
	},
}

func applyRules[T any](rec *T, rules []fieldRule[T]) error {
	for _, rule := range rules {
		if err := rule.apply(rec); err != nil {
			return err
		}
	}
	return nil
}

// EventConstraints trims and case-folds event fields and enforces required
// fields and non-empty agenda and tags, in declaration order.
func EventConstraints(_ context.Context, c Candidate[domain.Event]) (Candidate[domain.Event], error) {
	ev := c.Record.Clone()
	if err := applyRules(&ev, eventRules); err != nil {
		return c, err
	}
	return c.with(ev), nil
}

// BookingConstraints requires an event reference and a well-formed, lowercased email.
func BookingConstraints(_ context.Context, c Candidate[domain.Booking]) (Candidate[domain.Booking], error) {
	b := c.Record
	if err := applyRules(&b, bookingRules); err != nil {
		return c, err
	}
	return c.with(b), nil
}
