package auth

import (
	"context"
	"crypto/subtle"

	"github.com/timmy/mememania/internal/domain"
)

// Verifier checks a presented bearer token.
// Implementations return the granted principal, or false when the token is rejected.
type Verifier interface {
	Verify(ctx context.Context, token string) (*domain.Principal, bool)
}

// StaticTokenVerifier accepts exactly one shared secret.
type StaticTokenVerifier struct {
	token []byte
}

// NewStaticTokenVerifier creates a verifier for the given secret.
func NewStaticTokenVerifier(token string) *StaticTokenVerifier {
	return &StaticTokenVerifier{token: []byte(token)}
}

// Verify grants a principal with universal scope when token matches the secret.
// The comparison is exact and constant-time; an empty token never matches.
func (v *StaticTokenVerifier) Verify(_ context.Context, token string) (*domain.Principal, bool) {
	if token == "" || len(v.token) == 0 {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return nil, false
	}
	return &domain.Principal{
		Token:     token,
		ClientID:  domain.DefaultClientID,
		Scopes:    []string{domain.ScopeAll},
		ExpiresAt: nil,
	}, true
}
