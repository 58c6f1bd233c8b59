package domain

import (
	"context"
	"time"
)

// OrganizerSubject is the token subject issued to the single event organizer account.
const OrganizerSubject = "organizer"

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService exchanges organizer credentials for an access token.
type AuthService interface {
	Login(ctx context.Context, password string) (token string, err error)
}
