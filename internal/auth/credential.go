package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
)

var ErrMissingCredential = errors.New("missing bearer credential")

// Credential is the caller's session token. The token is verified by the
// employees API; locally it is only checked for an elapsed expiry.
type Credential struct {
	Token        string
	Subject      string
	Organization string
	ExpiresAt    time.Time
}

// Principal identifies the caller: the token subject, or the token itself
// when it carries no readable subject.
func (c Credential) Principal() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Token
}

type sessionClaims struct {
	Organization string `json:"organization,omitempty"`
	jwt.RegisteredClaims
}

// FromHeader extracts the bearer token from an Authorization header value.
// Opaque tokens are accepted as-is; JWTs whose exp has passed are rejected
// with domain.ErrUnauthorized so the caller can redirect without a round trip.
func FromHeader(header string, now time.Time) (Credential, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Credential{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, ErrMissingCredential)
	}
	token = strings.TrimSpace(token)

	cred := Credential{Token: token}

	claims := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return cred, nil
	}

	cred.Subject = claims.Subject
	cred.Organization = claims.Organization
	if claims.ExpiresAt != nil {
		cred.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(cred.ExpiresAt) {
			return Credential{}, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
		}
	}
	return cred, nil
}
