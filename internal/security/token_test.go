package security

import (
	"errors"
	"testing"
	"time"

	"github.com/workshopwise/marketplace-service/internal/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	session, err := manager.GenerateToken(42, "ada@test.test", models.RoleUser)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a token")
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("expiry must be in the future")
	}

	claims, err := manager.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user 42, got %d", claims.UserID)
	}
	if claims.Email != "ada@test.test" {
		t.Errorf("unexpected email %s", claims.Email)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("unexpected role %s", claims.Role)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	// TTL floor means a negative TTL cannot be used directly; sign with a
	// manager whose clock has effectively passed instead
	manager := &tokenManager{secret: []byte("test-secret"), ttl: -time.Hour, issuer: "workshopwise"}

	session, err := manager.GenerateToken(1, "ada@test.test", models.RoleUser)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = manager.ValidateToken(session.Token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	session, err := issuer.GenerateToken(1, "ada@test.test", models.RoleUser)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	_, err = verifier.ValidateToken(session.Token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenManager_GarbageToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	manager := NewTokenManager("test-secret", 0)

	session, err := manager.GenerateToken(1, "ada@test.test", models.RoleAdmin)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Zero TTL falls back to a day
	if session.ExpiresAt.Before(time.Now().Add(23 * time.Hour)) {
		t.Error("expected the default 24h expiry")
	}
}
