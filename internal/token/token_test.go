package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)

	signed, err := svc.Issue(map[string]any{"email": "u@x.com", "name": "U"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims["email"] != "u@x.com" {
		t.Fatalf("expected email claim u@x.com, got %v", claims["email"])
	}
	if claims["name"] != "U" {
		t.Fatalf("expected name claim U, got %v", claims["name"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatal("expected exp claim to be stamped")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := New("test-secret", -time.Minute)

	signed, err := svc.Issue(map[string]any{"email": "u@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := New("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := New("secret-a", time.Hour)
	verifier := New("secret-b", time.Hour)

	signed, err := issuer.Issue(map[string]any{"email": "u@x.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
