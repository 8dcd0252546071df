package identity

import (
	"context"
	"errors"
	"fmt"
	"log"

	"portalgambit/backend/pkg/jwt"
)

var (
	// ErrInvalidCredential means the provider rejected the external token.
	ErrInvalidCredential = errors.New("invalid authentication credentials")
	// ErrUnavailable means no provider is configured.
	ErrUnavailable = errors.New("identity provider is not configured")
)

// Provider verifies an opaque credential issued by an external identity
// provider.
type Provider interface {
	VerifyToken(ctx context.Context, token string) (jwt.Identity, error)
}

// Session is the token exchange response.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"3600"`
}

// Gateway exchanges external credentials for local session tokens.
type Gateway struct {
	provider Provider
	codec    *jwt.Codec
}

// NewGateway creates a gateway. A nil provider makes every exchange fail
// with ErrUnavailable.
func NewGateway(provider Provider, codec *jwt.Codec) *Gateway {
	return &Gateway{provider: provider, codec: codec}
}

// Verify checks the external credential and returns the identity it proves.
func (g *Gateway) Verify(ctx context.Context, token string) (jwt.Identity, error) {
	if g.provider == nil {
		return jwt.Identity{}, ErrUnavailable
	}
	if token == "" {
		return jwt.Identity{}, ErrInvalidCredential
	}
	id, err := g.provider.VerifyToken(ctx, token)
	if err != nil {
		log.Printf("external credential rejected: %v", err)
		return jwt.Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if id.UID == "" {
		return jwt.Identity{}, ErrInvalidCredential
	}
	return id, nil
}

// ExchangeForSession verifies the external credential and issues a session
// token for the identity.
func (g *Gateway) ExchangeForSession(ctx context.Context, token string) (Session, error) {
	id, err := g.Verify(ctx, token)
	if err != nil {
		return Session{}, err
	}
	access, err := g.codec.Issue(id)
	if err != nil {
		return Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}
	return Session{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int(g.codec.TTL().Seconds()),
	}, nil
}
