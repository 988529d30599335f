package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	return token
}

func TestSessionFromToken_ReadsClaims(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	token := signedToken(t, accessClaims{
		Email:         "admin@speg.test",
		AdminVerified: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})

	session, err := SessionFromToken(token)
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}

	if session.UserID != "user-1" {
		t.Errorf("UserID = %q", session.UserID)
	}

	if session.Email != "admin@speg.test" {
		t.Errorf("Email = %q", session.Email)
	}

	if !session.AdminVerified {
		t.Errorf("AdminVerified = false")
	}

	if !session.ExpiresAt.Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, expiry)
	}

	if session.Expired(time.Now()) {
		t.Errorf("fresh session reported expired")
	}

	if !session.Expired(expiry.Add(time.Minute)) {
		t.Errorf("stale session not reported expired")
	}
}

func TestSessionFromToken_NoExpiryNeverExpiresLocally(t *testing.T) {
	token := signedToken(t, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-2"},
	})

	session, err := SessionFromToken(token)
	if err != nil {
		t.Fatalf("SessionFromToken: %v", err)
	}

	if session.Expired(time.Now().Add(100 * 24 * time.Hour)) {
		t.Fatalf("session without exp claim reported expired")
	}
}

func TestSessionFromToken_RejectsGarbage(t *testing.T) {
	if _, err := SessionFromToken(""); err == nil {
		t.Fatalf("empty token accepted")
	}

	if _, err := SessionFromToken("not-a-jwt"); err == nil {
		t.Fatalf("malformed token accepted")
	}
}
