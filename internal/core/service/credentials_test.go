package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", "accounts-api", time.Hour)
	identity := domain.Identity{ID: 3, Email: "bob@example.com", Role: domain.RoleUser}

	token, expiresAt, err := svc.Issue(identity)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if time.Until(expiresAt) <= 59*time.Minute {
		t.Fatalf("expected expiry about an hour out, got %v", expiresAt)
	}

	got, err := svc.Verify("Bearer " + token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got != identity {
		t.Fatalf("expected %+v, got %+v", identity, got)
	}
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	svc := NewTokenService("secret", "", time.Hour)
	identity := domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleAdmin}

	a, _, _ := svc.Issue(identity)
	b, _, _ := svc.Issue(identity)
	if a == b {
		t.Fatal("expected distinct tokens for repeated issuance")
	}
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret", "", time.Hour)
	svc.now = fixedClock(issuedAt)

	token, _, err := svc.Issue(domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(59 * time.Minute))
	if _, err := svc.Verify("Bearer " + token); err != nil {
		t.Fatalf("expected token valid inside window, got %v", err)
	}

	svc.now = fixedClock(issuedAt.Add(61 * time.Minute))
	if _, err := svc.Verify("Bearer " + token); !errors.Is(err, domain.ErrCredentialExpired) {
		t.Fatalf("expected ErrCredentialExpired, got %v", err)
	}
}

func TestTokenService_MissingCredential(t *testing.T) {
	svc := NewTokenService("secret", "", time.Hour)

	for _, header := range []string{"", "Basic abc", "bearer abc", "Token abc"} {
		if _, err := svc.Verify(header); !errors.Is(err, domain.ErrMissingCredential) {
			t.Errorf("header %q: expected ErrMissingCredential, got %v", header, err)
		}
	}
}

func TestTokenService_InvalidCredential(t *testing.T) {
	svc := NewTokenService("secret", "", time.Hour)
	other := NewTokenService("another-secret", "", time.Hour)
	identity := domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleAdmin}

	forged, _, _ := other.Issue(identity)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "email": "a@example.com", "role": "superadmin",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	cases := map[string]string{
		"garbage":         "Bearer not-a-token",
		"empty":           "Bearer ",
		"wrong signature": "Bearer " + forged,
		"alg none":        "Bearer " + unsigned,
	}
	for name, header := range cases {
		if _, err := svc.Verify(header); !errors.Is(err, domain.ErrInvalidCredential) {
			t.Errorf("%s: expected ErrInvalidCredential, got %v", name, err)
		}
	}
}

func TestTokenService_WrongIssuer(t *testing.T) {
	issuer := NewTokenService("secret", "accounts-api", time.Hour)
	verifier := NewTokenService("secret", "someone-else", time.Hour)

	token, _, _ := issuer.Issue(domain.Identity{ID: 1, Email: "a@example.com", Role: domain.RoleAdmin})
	if _, err := verifier.Verify("Bearer " + token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenService_RejectsTokenWithoutIdentity(t *testing.T) {
	svc := NewTokenService("secret", "", time.Hour)

	token, _, err := svc.Issue(domain.Identity{})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a compact JWS, got %q", token)
	}
	if _, err := svc.Verify("Bearer " + token); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
