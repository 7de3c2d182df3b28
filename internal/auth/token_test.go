package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", 7*24*time.Hour)
	identity := Identity{ID: uuid.New(), Username: "alice", Role: "DONOR"}

	token, expiresAt, err := m.Issue(identity)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(expiresAt) < 6*24*time.Hour {
		t.Errorf("expected ~7 day expiry, got %s", expiresAt)
	}

	got, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != identity {
		t.Errorf("expected %+v, got %+v", identity, got)
	}
}

func TestParseExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.Issue(Identity{ID: uuid.New(), Username: "bob", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseMissing(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	if _, err := m.Parse(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	claims := Claims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := m.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenPayloadHasNoCredentials(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _, err := m.Issue(Identity{ID: uuid.New(), Username: "carol", Role: "VOLUNTEER"})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	var claims jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		t.Fatalf("ParseUnverified failed: %v", err)
	}
	for key := range claims {
		if strings.Contains(strings.ToLower(key), "password") {
			t.Errorf("token carries credential claim %q", key)
		}
	}
	if _, ok := claims["role"]; !ok {
		t.Error("token is missing role claim")
	}
}
