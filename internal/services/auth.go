package services

import (
	"context"
	"fmt"
	"time"

	"devevent/internal/domain"
)

type authService struct {
	passwordHash string
	verifier     domain.PasswordVerifier
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewAuthService creates an AuthService for the organizer account whose bcrypt hash is passwordHash.
// An empty hash disables login.
func NewAuthService(passwordHash string, verifier domain.PasswordVerifier, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		passwordHash: passwordHash,
		verifier:     verifier,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if s.passwordHash == "" || password == "" {
		return "", domain.ErrUnauthorized
	}
	if err := s.verifier.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrUnauthorized
	}
	token, err := s.issuer.Issue(domain.OrganizerSubject, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
