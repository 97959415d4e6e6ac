package auth

import (
	"testing"
	"time"

	"github.com/freshmart/admin-console/internal/domain"
)

func TestTokenService(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	t.Run("happy_round_trip", func(t *testing.T) {
		svc := NewTokenService(secret, time.Hour)

		token, expiresAt, err := svc.Issue("admin")
		if err != nil {
			t.Fatal(err)
		}
		if !expiresAt.After(time.Now()) {
			t.Error("expiry not in the future")
		}

		username, err := svc.Verify(token)
		if err != nil {
			t.Fatal(err)
		}
		if username != "admin" {
			t.Errorf("expected admin, got %q", username)
		}
	})

	t.Run("error_wrong_secret", func(t *testing.T) {
		token, _, err := NewTokenService(secret, time.Hour).Issue("admin")
		if err != nil {
			t.Fatal(err)
		}

		_, err = NewTokenService("another-secret-another-secret-xx", time.Hour).Verify(token)
		if !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})

	t.Run("error_expired", func(t *testing.T) {
		svc := NewTokenService(secret, -time.Minute)

		token, _, err := svc.Issue("admin")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Verify(token); !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized for expired token, got %v", err)
		}
	})

	t.Run("error_garbage", func(t *testing.T) {
		svc := NewTokenService(secret, time.Hour)
		if _, err := svc.Verify("not.a.token"); !domain.IsUnauthorized(err) {
			t.Errorf("expected unauthorized, got %v", err)
		}
	})
}
