package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Session describes the logged-in caller as read from the access token.
// The token is issued and signed by the backend; the gateway only
// inspects claims for display and expiry bookkeeping, it never validates
// the signature locally.
type Session struct {
	UserID        string
	Email         string
	AdminVerified bool
	ExpiresAt     time.Time
}

type accessClaims struct {
	Email         string `json:"email"`
	AdminVerified bool   `json:"adminVerified"`
	jwt.RegisteredClaims
}

// SessionFromToken parses an access token into a Session without
// verifying the signature
func SessionFromToken(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, errors.New("empty access token")
	}

	claims := &accessClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, err
	}

	s := &Session{
		UserID:        claims.Subject,
		Email:         claims.Email,
		AdminVerified: claims.AdminVerified,
	}

	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}

	return s, nil
}

// Expired reports whether the session's token has passed its expiry.
// Tokens without an exp claim never expire locally; the backend still
// answers 401 when it disagrees.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return now.After(s.ExpiresAt)
}
