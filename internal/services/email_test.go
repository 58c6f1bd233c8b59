package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (r *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	r.name = templateName
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.BookingConfirmationEmailData)
	return "Booked: " + d.EventTitle, "<p>" + d.EventSlug + "</p>", d.EventSlug, nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	data := &domain.BookingConfirmationEmailData{Email: "ada@example.com", EventTitle: "Go Day", EventSlug: "go-day"}

	t.Run("success", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewEmailService(mailer, renderer, discardLogger())

		require.NoError(t, svc.SendBookingConfirmation(context.Background(), data))
		assert.Equal(t, "booking_confirmation", renderer.name)
		assert.Equal(t, "ada@example.com", mailer.to)
		assert.Equal(t, "Booked: Go Day", mailer.subject)
		assert.Equal(t, "<p>go-day</p>", mailer.html)
		assert.Equal(t, "go-day", mailer.text)
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, discardLogger())
		require.Error(t, svc.SendBookingConfirmation(context.Background(), nil))
	})

	t.Run("render error", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("missing template")}, discardLogger())
		err := svc.SendBookingConfirmation(context.Background(), data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing template")
		assert.Empty(t, mailer.to)
	})

	t.Run("send error", func(t *testing.T) {
		sendErr := errors.New("ses down")
		svc := NewEmailService(&fakeMailer{err: sendErr}, &fakeRenderer{}, discardLogger())
		err := svc.SendBookingConfirmation(context.Background(), data)
		require.ErrorIs(t, err, sendErr)
	})
}
