package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", "carteira", time.Hour)
	in := Session{UserID: "u1", Name: "Ana", Role: RoleManager, Department: "cobranca"}

	signed, exp, err := tokens.Issue(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", exp)
	}

	out, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out != in {
		t.Fatalf("expected %+v, got %+v", in, *out)
	}
}

func TestTokensRejectsTampering(t *testing.T) {
	signed, _, _ := NewTokens("secret", "carteira", time.Hour).Issue(Session{UserID: "u1"})

	if _, err := NewTokens("other", "carteira", time.Hour).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := NewTokens("secret", "someone-else", time.Hour).Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

func TestTokensExpire(t *testing.T) {
	tokens := NewTokens("secret", "carteira", time.Minute)
	signed, _, _ := tokens.Issue(Session{UserID: "u1"})

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := tokens.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	creds := NewCredentials()
	creds.Add("Admin@Example.com", string(hash), Session{UserID: "admin", Role: RoleAdmin})

	s, err := creds.Authenticate("admin@example.com", "s3nha")
	if err != nil || s.UserID != "admin" {
		t.Fatalf("unexpected result %+v err=%v", s, err)
	}
	if _, err := creds.Authenticate("admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := creds.Authenticate("nobody@example.com", "s3nha"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("expected no session on empty context")
	}
	ctx := WithSession(context.Background(), Session{UserID: "u1", Role: RoleAgent})
	s, ok := FromContext(ctx)
	if !ok || s.UserID != "u1" || s.IsSupervisor() {
		t.Fatalf("unexpected session %+v ok=%v", s, ok)
	}
	if !(Session{Role: RoleAdmin}).IsSupervisor() {
		t.Fatalf("expected admin to be supervisor")
	}
}
