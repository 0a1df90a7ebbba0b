package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenServiceIssueAndParse(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("oracle-operator")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.Caller != "oracle-operator" {
		t.Fatalf("expected caller oracle-operator, got %s", claims.Caller)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	parser := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue("caller")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := parser.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	now := time.Now().UTC().Add(-2 * time.Hour)
	claims := ServiceClaims{
		Caller: "caller",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "decentratrust",
			Subject:   "caller",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("expected no error signing, got %v", err)
	}

	if _, err := svc.Parse(expired); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenServiceRejectsForeignIssuer(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	claims := ServiceClaims{
		Caller: "caller",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("expected no error signing, got %v", err)
	}

	if _, err := svc.Parse(foreign); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenServiceEmptyToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, err := svc.Parse("   "); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
