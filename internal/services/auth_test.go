package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

type fakeVerifier struct{ password string }

func (v fakeVerifier) Compare(hash, password string) error {
	if hash != "hash:"+v.password || password != v.password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	subject string
	expiry  time.Duration
	err     error
}

func (i *fakeIssuer) Issue(subject string, expiry time.Duration) (string, error) {
	i.subject, i.expiry = subject, expiry
	if i.err != nil {
		return "", i.err
	}
	return "token-for-" + subject, nil
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		hash      string
		password  string
		issuerErr error
		wantToken string
		wantErr   error
	}{
		{name: "success", hash: "hash:s3cret", password: "s3cret", wantToken: "token-for-organizer"},
		{name: "wrong password", hash: "hash:s3cret", password: "guess", wantErr: domain.ErrUnauthorized},
		{name: "empty password", hash: "hash:s3cret", password: "", wantErr: domain.ErrUnauthorized},
		{name: "login disabled", hash: "", password: "s3cret", wantErr: domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &fakeIssuer{err: tt.issuerErr}
			svc := NewAuthService(tt.hash, fakeVerifier{password: "s3cret"}, issuer, time.Hour)

			token, err := svc.Login(context.Background(), tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, domain.OrganizerSubject, issuer.subject)
			assert.Equal(t, time.Hour, issuer.expiry)
		})
	}
}

func TestAuthService_Login_IssuerError(t *testing.T) {
	svc := NewAuthService("hash:s3cret", fakeVerifier{password: "s3cret"}, &fakeIssuer{err: errors.New("no key")}, time.Hour)
	_, err := svc.Login(context.Background(), "s3cret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}
